package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID             string    `json:"user_id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserDTO represents the API view of a user (no credentials)
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ToDTO converts User domain model to DTO
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Validate checks if the user record is storable
func (u *User) Validate() error {
	if u.ID == "" {
		return &ValidationError{Field: "id", Message: "user ID is required"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if u.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if u.HashedPassword == "" {
		return &ValidationError{Field: "password", Message: "password hash is required"}
	}
	return nil
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the registration request
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if r.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if len(r.Password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned from register and login
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}
