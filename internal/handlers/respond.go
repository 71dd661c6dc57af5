package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
	"genai-stack/internal/services"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// SuccessResponse is the JSON body returned for acknowledged operations
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Status:  status,
	})
}

// sendServiceError maps service and repository errors to HTTP statuses
func sendServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		sendError(w, http.StatusBadRequest, validationErr.Error())
	case repositories.IsNotFound(err):
		sendError(w, http.StatusNotFound, err.Error())
	case repositories.IsAlreadyExists(err):
		sendError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		sendError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInactiveAccount):
		sendError(w, http.StatusForbidden, err.Error())
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}
