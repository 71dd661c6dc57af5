package repositories

import (
	"context"

	"genai-stack/internal/models"
)

// DocumentRepository defines the interface for document metadata storage
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, documentID string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, documentID string) error
}
