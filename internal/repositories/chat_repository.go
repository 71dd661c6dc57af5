package repositories

import (
	"context"

	"genai-stack/internal/models"
)

// ChatRepository defines the interface for chat turn storage.
// Turns are append-only; ListByWorkflow returns them in creation order.
type ChatRepository interface {
	Append(ctx context.Context, turn *models.ChatTurn) error
	ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ChatTurn, error)
	DeleteByWorkflow(ctx context.Context, workflowID string) error
}
