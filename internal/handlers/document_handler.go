package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"genai-stack/internal/auth"
	"genai-stack/internal/models"
	"genai-stack/internal/services"
)

// maxUploadBytes caps multipart uploads at 50MB
const maxUploadBytes = 50 << 20

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	docService *services.DocumentService
	logger     *log.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService *services.DocumentService, logger *log.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// DocumentListResponse represents a list of documents
type DocumentListResponse struct {
	Documents []models.DocumentDTO `json:"documents"`
	Count     int                  `json:"count"`
}

// Upload handles PDF uploads
// @Summary Upload a document
// @Description Upload a PDF, extract its text and embed it for retrieval
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF file"
// @Success 201 {object} models.DocumentDTO
// @Failure 400 {object} ErrorResponse
// @Router /api/documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Printf("Failed to parse upload form: %v", err)
		sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	h.logger.Printf("Upload request from user %s: %s (%d bytes)", userID, header.Filename, len(content))

	doc, err := h.docService.Upload(r.Context(), userID, header.Filename, content)
	if err != nil {
		h.logger.Printf("Upload failed: %v", err)
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, doc.ToDTO())
}

// List handles listing the caller's documents
// @Summary List documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DocumentListResponse
// @Router /api/documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	docs, err := h.docService.List(r.Context(), userID)
	if err != nil {
		h.logger.Printf("Failed to list documents for %s: %v", userID, err)
		sendServiceError(w, err)
		return
	}

	dtos := make([]models.DocumentDTO, 0, len(docs))
	for _, doc := range docs {
		dtos = append(dtos, doc.ToDTO())
	}

	sendJSON(w, http.StatusOK, DocumentListResponse{
		Documents: dtos,
		Count:     len(dtos),
	})
}

// Get handles fetching a single document
// @Summary Get document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param document_id path string true "Document ID"
// @Success 200 {object} models.DocumentDTO
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{document_id} [get]
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	documentID := mux.Vars(r)["document_id"]

	doc, err := h.docService.Get(r.Context(), userID, documentID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, doc.ToDTO())
}

// Delete handles document deletion
// @Summary Delete document
// @Description Delete a document, its stored file and its embeddings
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param document_id path string true "Document ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{document_id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	documentID := mux.Vars(r)["document_id"]

	if err := h.docService.Delete(r.Context(), userID, documentID); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Document deleted successfully",
	})
}
