package models

import (
	"time"
)

// ChatTurn represents one persisted query/response pair for a workflow.
// Turns are append-only and ordered by creation time.
type ChatTurn struct {
	ID            string                 `json:"turn_id"`
	WorkflowID    string                 `json:"workflow_id"`
	UserID        string                 `json:"user_id"`
	Query         string                 `json:"query"`
	Response      string                 `json:"response"`
	ExecutionData map[string]interface{} `json:"execution_data,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ChatTurnDTO represents the API view of a chat turn
type ChatTurnDTO struct {
	ID            string                 `json:"id"`
	WorkflowID    string                 `json:"workflow_id"`
	UserID        string                 `json:"user_id"`
	Query         string                 `json:"query"`
	Response      string                 `json:"response"`
	ExecutionData map[string]interface{} `json:"execution_data,omitempty"`
	CreatedAt     string                 `json:"created_at"`
}

// ToDTO converts ChatTurn domain model to DTO
func (t *ChatTurn) ToDTO() ChatTurnDTO {
	return ChatTurnDTO{
		ID:            t.ID,
		WorkflowID:    t.WorkflowID,
		UserID:        t.UserID,
		Query:         t.Query,
		Response:      t.Response,
		ExecutionData: t.ExecutionData,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

// Validate checks if the chat turn is storable
func (t *ChatTurn) Validate() error {
	if t.ID == "" {
		return &ValidationError{Field: "id", Message: "turn ID is required"}
	}
	if t.WorkflowID == "" {
		return &ValidationError{Field: "workflow_id", Message: "workflow ID is required"}
	}
	if t.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "user ID is required"}
	}
	if t.Query == "" {
		return &ValidationError{Field: "query", Message: "query is required"}
	}
	return nil
}

// ChatMessage represents a single message in an assistant conversation
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// AssistantChatRequest represents a platform-assistant chat request
type AssistantChatRequest struct {
	Message    string        `json:"message"`
	WorkflowID string        `json:"workflow_id,omitempty"`
	History    []ChatMessage `json:"history,omitempty"`
}

// AssistantChatResponse represents the assistant's reply
type AssistantChatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}
