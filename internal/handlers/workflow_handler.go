package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"genai-stack/internal/auth"
	"genai-stack/internal/models"
	"genai-stack/internal/services"
)

// WorkflowHandler handles HTTP requests for workflow operations
type WorkflowHandler struct {
	workflowService  *services.WorkflowService
	executionService *services.ExecutionService
	logger           *log.Logger
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(workflowService *services.WorkflowService, executionService *services.ExecutionService, logger *log.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService:  workflowService,
		executionService: executionService,
		logger:           logger,
	}
}

// WorkflowListResponse represents a list of workflows
type WorkflowListResponse struct {
	Workflows []*models.Workflow `json:"workflows"`
	Count     int                `json:"count"`
}

// ChatHistoryResponse represents a workflow's chat history
type ChatHistoryResponse struct {
	Turns []models.ChatTurnDTO `json:"turns"`
	Count int                  `json:"count"`
}

// Create handles workflow creation
// @Summary Create a workflow
// @Tags workflows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateWorkflowRequest true "Workflow definition"
// @Success 201 {object} models.Workflow
// @Failure 400 {object} ErrorResponse
// @Router /api/workflows [post]
func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req models.CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workflow, err := h.workflowService.Create(r.Context(), userID, &req)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, workflow)
}

// List handles listing the caller's workflows
// @Summary List workflows
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkflowListResponse
// @Router /api/workflows [get]
func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	workflows, err := h.workflowService.List(r.Context(), userID)
	if err != nil {
		h.logger.Printf("Failed to list workflows for %s: %v", userID, err)
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, WorkflowListResponse{
		Workflows: workflows,
		Count:     len(workflows),
	})
}

// Get handles fetching a single workflow
// @Summary Get workflow
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param workflow_id path string true "Workflow ID"
// @Success 200 {object} models.Workflow
// @Failure 404 {object} ErrorResponse
// @Router /api/workflows/{workflow_id} [get]
func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	workflowID := mux.Vars(r)["workflow_id"]

	workflow, err := h.workflowService.Get(r.Context(), userID, workflowID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, workflow)
}

// Update handles partial workflow updates
// @Summary Update workflow
// @Tags workflows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workflow_id path string true "Workflow ID"
// @Param request body models.UpdateWorkflowRequest true "Fields to update"
// @Success 200 {object} models.Workflow
// @Failure 404 {object} ErrorResponse
// @Router /api/workflows/{workflow_id} [put]
func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	workflowID := mux.Vars(r)["workflow_id"]

	var req models.UpdateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workflow, err := h.workflowService.Update(r.Context(), userID, workflowID, &req)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, workflow)
}

// Delete handles workflow deletion
// @Summary Delete workflow
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param workflow_id path string true "Workflow ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/workflows/{workflow_id} [delete]
func (h *WorkflowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	workflowID := mux.Vars(r)["workflow_id"]

	if err := h.workflowService.Delete(r.Context(), userID, workflowID); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Workflow deleted successfully",
	})
}

// Execute handles running a workflow against a query
// @Summary Execute workflow
// @Description Run a query through the workflow and persist the chat turn
// @Tags workflows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workflow_id path string true "Workflow ID"
// @Param request body models.ExecuteRequest true "Query to execute"
// @Success 200 {object} models.ChatTurnDTO
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/workflows/{workflow_id}/execute [post]
func (h *WorkflowHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	workflowID := mux.Vars(r)["workflow_id"]

	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.logger.Printf("Executing workflow %s for user %s", workflowID, userID)

	turn, err := h.executionService.Execute(r.Context(), userID, workflowID, &req)
	if err != nil {
		h.logger.Printf("Workflow execution failed: %v", err)
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, turn.ToDTO())
}

// ChatHistory returns the persisted turns of a workflow
// @Summary Get workflow chat history
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param workflow_id path string true "Workflow ID"
// @Success 200 {object} ChatHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/workflows/{workflow_id}/chat-history [get]
func (h *WorkflowHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	workflowID := mux.Vars(r)["workflow_id"]

	turns, err := h.executionService.ChatHistory(r.Context(), userID, workflowID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	dtos := make([]models.ChatTurnDTO, 0, len(turns))
	for _, turn := range turns {
		dtos = append(dtos, turn.ToDTO())
	}

	sendJSON(w, http.StatusOK, ChatHistoryResponse{
		Turns: dtos,
		Count: len(dtos),
	})
}
