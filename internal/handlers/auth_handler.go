package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"genai-stack/internal/auth"
	"genai-stack/internal/models"
	"genai-stack/internal/services"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	userService *services.UserService
	logger      *log.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles account creation
// @Summary Register a new account
// @Description Create an account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.logger.Printf("Registration failed for %s: %v", req.Email, err)
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, resp)
}

// Login handles credential verification
// @Summary Log in
// @Description Verify credentials and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.logger.Printf("Login failed for %s: %v", req.Email, err)
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated account
// @Summary Get current user
// @Description Return the account belonging to the access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserDTO
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		sendError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, user.ToDTO())
}
