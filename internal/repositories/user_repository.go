package repositories

import (
	"context"

	"genai-stack/internal/models"
)

// UserRepository defines the interface for account storage
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, email, username string) (bool, error)

	Ping(ctx context.Context) error
}
