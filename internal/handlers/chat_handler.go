package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"genai-stack/internal/models"
	"genai-stack/internal/services"
)

// ChatHandler handles HTTP requests for the platform assistant
type ChatHandler struct {
	assistant services.Assistant
	logger    *log.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant services.Assistant, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// Chat handles an assistant conversation turn
// @Summary Chat with the platform assistant
// @Description Send a message to the workflow-builder assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AssistantChatRequest true "Chat message"
// @Success 200 {object} models.AssistantChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.AssistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		sendError(w, http.StatusBadRequest, "Message is required")
		return
	}

	response, err := h.assistant.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		h.logger.Printf("Assistant chat failed: %v", err)
		sendError(w, http.StatusBadGateway, "Assistant is unavailable")
		return
	}

	sendJSON(w, http.StatusOK, models.AssistantChatResponse{
		Response: response,
		Status:   "success",
	})
}

// Health reports whether the assistant endpoint is up
// @Summary Chat service health
// @Tags chat
// @Produce json
// @Success 200 {object} models.AssistantChatResponse
// @Router /api/chat/health [get]
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, models.AssistantChatResponse{
		Response: "Chat service is healthy",
		Status:   "success",
	})
}
