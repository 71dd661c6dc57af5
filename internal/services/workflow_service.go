package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

// WorkflowService handles workflow CRUD with owner scoping
type WorkflowService struct {
	workflows repositories.WorkflowRepository
	chats     repositories.ChatRepository
	logger    *log.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(workflows repositories.WorkflowRepository, chats repositories.ChatRepository, logger *log.Logger) *WorkflowService {
	return &WorkflowService{
		workflows: workflows,
		chats:     chats,
		logger:    logger,
	}
}

// Create stores a new workflow owned by the user
func (s *WorkflowService) Create(ctx context.Context, userID string, req *models.CreateWorkflowRequest) (*models.Workflow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	workflow := &models.Workflow{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Configuration: req.Configuration,
		Nodes:         req.Nodes,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.workflows.Create(ctx, workflow); err != nil {
		return nil, err
	}

	s.logger.Printf("Created workflow %s for user %s", workflow.ID, userID)
	return workflow, nil
}

// Get returns a workflow owned by the user
func (s *WorkflowService) Get(ctx context.Context, userID string, workflowID string) (*models.Workflow, error) {
	workflow, err := s.workflows.Get(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow.UserID != userID {
		return nil, repositories.NotFoundError("workflow", workflowID)
	}
	return workflow, nil
}

// List returns all workflows owned by the user, newest first
func (s *WorkflowService) List(ctx context.Context, userID string) ([]*models.Workflow, error) {
	return s.workflows.ListByUser(ctx, userID)
}

// Update applies a partial update to a workflow owned by the user
func (s *WorkflowService) Update(ctx context.Context, userID string, workflowID string, req *models.UpdateWorkflowRequest) (*models.Workflow, error) {
	workflow, err := s.Get(ctx, userID, workflowID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, &models.ValidationError{Field: "name", Message: "name cannot be empty"}
		}
		workflow.Name = *req.Name
	}
	if req.Description != nil {
		workflow.Description = *req.Description
	}
	if req.Configuration != nil {
		workflow.Configuration = req.Configuration
	}
	if req.Nodes != nil {
		workflow.Nodes = req.Nodes
	}
	if req.IsActive != nil {
		workflow.IsActive = *req.IsActive
	}
	workflow.UpdatedAt = time.Now()

	if err := s.workflows.Update(ctx, workflow); err != nil {
		return nil, err
	}
	return workflow, nil
}

// Delete removes a workflow and its chat history
func (s *WorkflowService) Delete(ctx context.Context, userID string, workflowID string) error {
	if _, err := s.Get(ctx, userID, workflowID); err != nil {
		return err
	}

	if err := s.chats.DeleteByWorkflow(ctx, workflowID); err != nil {
		s.logger.Printf("WARNING: failed to delete chat history for workflow %s: %v", workflowID, err)
	}

	return s.workflows.Delete(ctx, workflowID)
}
