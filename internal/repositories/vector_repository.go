package repositories

import (
	"context"

	"genai-stack/internal/models"
)

// VectorRepository defines the interface for per-document embedding
// collections in the vector database.
type VectorRepository interface {
	// EnsureCollection creates the collection if it does not exist yet
	EnsureCollection(ctx context.Context, name string) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	DeleteCollection(ctx context.Context, name string) error

	StoreChunks(ctx context.Context, collection string, chunks []*models.EmbeddedChunk) error
	Query(ctx context.Context, collection string, queryEmbedding []float32, topK int) ([]*models.RetrievedChunk, error)

	Ping(ctx context.Context) error
	Close() error
}

// VectorRepositoryError represents errors from the vector repository
type VectorRepositoryError struct {
	Operation string
	Err       error
	Message   string
}

func (e *VectorRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *VectorRepositoryError) Unwrap() error {
	return e.Err
}

// NewVectorRepositoryError creates a new vector repository error
func NewVectorRepositoryError(operation string, err error, message string) *VectorRepositoryError {
	return &VectorRepositoryError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}
