package repositories

import (
	"context"

	"genai-stack/internal/models"
)

// WorkflowRepository defines the interface for workflow storage.
// Listing is owner-scoped; ownership checks against a loaded record
// are the caller's responsibility.
type WorkflowRepository interface {
	Create(ctx context.Context, workflow *models.Workflow) error
	Get(ctx context.Context, workflowID string) (*models.Workflow, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Workflow, error)
	Update(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, workflowID string) error
}
