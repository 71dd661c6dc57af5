package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

const (
	defaultTemperature   float32 = 0.7
	webSearchResultCount         = 3

	webSearchPromptTemplate = "Based on these web search results:\n%s\n\nProvide an updated response to: %s"
)

// ContextRetriever assembles the document context block for a query
type ContextRetriever interface {
	AssembleContext(ctx context.Context, userID string, documentIDs []string, query string) (string, error)
}

// ResponseGenerator generates a response for a query with optional context
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, query string, contextText string, temperature float32) string
}

// ExecutionService orchestrates workflow execution: context retrieval,
// LLM generation, optional web-search augmentation and turn persistence.
type ExecutionService struct {
	workflows repositories.WorkflowRepository
	chats     repositories.ChatRepository
	retriever ContextRetriever
	llm       ResponseGenerator
	search    WebSearcher
	logger    *log.Logger
}

// NewExecutionService creates a new execution service
func NewExecutionService(
	workflows repositories.WorkflowRepository,
	chats repositories.ChatRepository,
	retriever ContextRetriever,
	llm ResponseGenerator,
	search WebSearcher,
	logger *log.Logger,
) *ExecutionService {
	return &ExecutionService{
		workflows: workflows,
		chats:     chats,
		retriever: retriever,
		llm:       llm,
		search:    search,
		logger:    logger,
	}
}

// Execute runs a workflow against a query and persists the resulting
// chat turn. Provider failures degrade the response; persistence
// failures are fatal.
func (s *ExecutionService) Execute(ctx context.Context, userID string, workflowID string, req *models.ExecuteRequest) (*models.ChatTurn, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	workflow, err := s.workflows.Get(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow.UserID != userID {
		return nil, repositories.NotFoundError("workflow", workflowID)
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	executionData := map[string]interface{}{
		"temperature": temperature,
	}

	contextText := ""
	if len(req.ContextDocuments) > 0 {
		contextText, err = s.retriever.AssembleContext(ctx, userID, req.ContextDocuments, req.Query)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble context: %w", err)
		}
		executionData["context_documents"] = req.ContextDocuments
		executionData["context_used"] = contextText != ""
	}

	response := s.llm.GenerateResponse(ctx, req.Query, contextText, temperature)

	if workflow.Configuration.WebSearchEnabled() {
		response = s.augmentWithWebSearch(ctx, req.Query, response, temperature, executionData)
	}

	if IsDegradedResponse(response) {
		executionData["degraded"] = true
	}

	turn := &models.ChatTurn{
		ID:            uuid.New().String(),
		WorkflowID:    workflowID,
		UserID:        userID,
		Query:         req.Query,
		Response:      response,
		ExecutionData: executionData,
		CreatedAt:     time.Now(),
	}

	if err := s.chats.Append(ctx, turn); err != nil {
		return nil, fmt.Errorf("failed to persist chat turn: %w", err)
	}

	return turn, nil
}

// augmentWithWebSearch runs a web search for the query and, when results
// come back, replaces the response with a second generation grounded in
// them. Search failures keep the original response.
func (s *ExecutionService) augmentWithWebSearch(ctx context.Context, query string, response string, temperature float32, executionData map[string]interface{}) string {
	outcome := s.search.Search(ctx, query, webSearchResultCount)

	switch outcome.Status {
	case SearchStatusUnconfigured:
		s.logger.Printf("Web search requested but no API key configured, skipping")
		executionData["web_search_used"] = false
		return response
	case SearchStatusFailed:
		s.logger.Printf("WARNING: web search failed: %v", outcome.Err)
		executionData["web_search_used"] = false
		executionData["web_search_error"] = outcome.Err.Error()
		return response
	}

	if len(outcome.Results) == 0 {
		executionData["web_search_used"] = false
		return response
	}

	var sb strings.Builder
	for _, result := range outcome.Results {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", result.Title, result.Snippet))
	}

	prompt := fmt.Sprintf(webSearchPromptTemplate, sb.String(), query)
	executionData["web_search_used"] = true
	executionData["web_search_results"] = len(outcome.Results)

	return s.llm.GenerateResponse(ctx, prompt, "", temperature)
}

// ChatHistory returns the persisted turns of a workflow in creation order
func (s *ExecutionService) ChatHistory(ctx context.Context, userID string, workflowID string) ([]*models.ChatTurn, error) {
	workflow, err := s.workflows.Get(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow.UserID != userID {
		return nil, repositories.NotFoundError("workflow", workflowID)
	}
	return s.chats.ListByWorkflow(ctx, workflowID)
}
