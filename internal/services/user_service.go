package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"genai-stack/internal/auth"
	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

// Sentinel errors for authentication outcomes
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
)

// UserService handles registration and login
type UserService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
	logger *log.Logger
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, tokens *auth.TokenManager, logger *log.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and returns an access token for it
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New().String(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: string(hash),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Create(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Printf("Registered user %s (%s)", user.ID, user.Email)
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.ToDTO(),
	}, nil
}

// Login verifies credentials and returns an access token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := s.tokens.Create(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.ToDTO(),
	}, nil
}

// GetByID returns the account with the given ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
