package handlers

import (
	"net/http"
)

// HealthCheck reports server liveness
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Server is healthy",
	})
}
