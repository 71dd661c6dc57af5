package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"genai-stack/internal/handlers"
)

// Handlers bundles all route handlers for registration
type Handlers struct {
	Auth     *handlers.AuthHandler
	Workflow *handlers.WorkflowHandler
	Document *handlers.DocumentHandler
	Chat     *handlers.ChatHandler

	// AuthMiddleware guards everything except health and auth endpoints
	AuthMiddleware func(http.Handler) http.Handler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	// Health endpoints
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Auth endpoints (no token required)
	router.HandleFunc("/api/auth/register", h.Auth.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)

	// Everything below requires a Bearer token
	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.AuthMiddleware)

	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	// Workflow endpoints
	api.HandleFunc("/workflows", h.Workflow.Create).Methods(http.MethodPost)
	api.HandleFunc("/workflows", h.Workflow.List).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{workflow_id}", h.Workflow.Get).Methods(http.MethodGet)
	api.HandleFunc("/workflows/{workflow_id}", h.Workflow.Update).Methods(http.MethodPut)
	api.HandleFunc("/workflows/{workflow_id}", h.Workflow.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/workflows/{workflow_id}/execute", h.Workflow.Execute).Methods(http.MethodPost)
	api.HandleFunc("/workflows/{workflow_id}/chat-history", h.Workflow.ChatHistory).Methods(http.MethodGet)

	// Document endpoints
	api.HandleFunc("/documents", h.Document.Upload).Methods(http.MethodPost)
	api.HandleFunc("/documents", h.Document.List).Methods(http.MethodGet)
	api.HandleFunc("/documents/{document_id}", h.Document.Get).Methods(http.MethodGet)
	api.HandleFunc("/documents/{document_id}", h.Document.Delete).Methods(http.MethodDelete)

	// Platform assistant endpoints
	api.HandleFunc("/chat", h.Chat.Chat).Methods(http.MethodPost)
	api.HandleFunc("/chat/health", h.Chat.Health).Methods(http.MethodGet)
}
