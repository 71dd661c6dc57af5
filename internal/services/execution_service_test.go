package services

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

func setupExecutionService() (*ExecutionService, *MockWorkflowRepository, *MockChatRepository, *MockContextRetriever, *MockResponseGenerator, *MockWebSearcher) {
	mockWorkflows := new(MockWorkflowRepository)
	mockChats := new(MockChatRepository)
	mockRetriever := new(MockContextRetriever)
	mockLLM := new(MockResponseGenerator)
	mockSearch := new(MockWebSearcher)
	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)

	service := NewExecutionService(mockWorkflows, mockChats, mockRetriever, mockLLM, mockSearch, logger)
	return service, mockWorkflows, mockChats, mockRetriever, mockLLM, mockSearch
}

func testWorkflow(id, userID string, webSearch bool) *models.Workflow {
	wf := &models.Workflow{
		ID:       id,
		UserID:   userID,
		Name:     "test workflow",
		IsActive: true,
	}
	if webSearch {
		wf.Configuration = models.WorkflowConfiguration{"enable_web_search": true}
	}
	return wf
}

func TestExecute_PlainQuery(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", float32(0.7)).Return("hi there")
	mockChats.On("Append", ctx, mock.MatchedBy(func(turn *models.ChatTurn) bool {
		return turn.WorkflowID == "wf-1" &&
			turn.UserID == "user-1" &&
			turn.Query == "hello" &&
			turn.Response == "hi there" &&
			turn.ID != ""
	})).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "hi there", turn.Response)
	assert.NotContains(t, turn.ExecutionData, "degraded")
	mockChats.AssertExpectations(t)
}

func TestExecute_EmptyQueryRejected(t *testing.T) {
	service, _, _, _, _, _ := setupExecutionService()

	turn, err := service.Execute(context.Background(), "user-1", "wf-1", &models.ExecuteRequest{Query: ""})

	assert.Error(t, err)
	assert.Nil(t, turn)
}

func TestExecute_ForeignWorkflowNotFound(t *testing.T) {
	service, mockWorkflows, _, _, _, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "someone-else", false), nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.Nil(t, turn)
	assert.True(t, repositories.IsNotFound(err))
}

func TestExecute_WithContextDocuments(t *testing.T) {
	service, mockWorkflows, mockChats, mockRetriever, mockLLM, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockRetriever.On("AssembleContext", ctx, "user-1", []string{"d1", "d2"}, "question").
		Return("relevant chunks\n", nil)
	mockLLM.On("GenerateResponse", ctx, "question", "relevant chunks\n", float32(0.7)).Return("grounded answer")
	mockChats.On("Append", ctx, mock.Anything).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{
		Query:            "question",
		ContextDocuments: []string{"d1", "d2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "grounded answer", turn.Response)
	assert.Equal(t, true, turn.ExecutionData["context_used"])
	assert.Equal(t, []string{"d1", "d2"}, turn.ExecutionData["context_documents"])
}

func TestExecute_RetrievalFailureIsFatal(t *testing.T) {
	service, mockWorkflows, mockChats, mockRetriever, _, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockRetriever.On("AssembleContext", ctx, "user-1", []string{"gone"}, "question").
		Return("", repositories.NotFoundError("document", "gone"))

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{
		Query:            "question",
		ContextDocuments: []string{"gone"},
	})

	assert.Error(t, err)
	assert.Nil(t, turn)
	mockChats.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestExecute_CustomTemperature(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, _ := setupExecutionService()
	ctx := context.Background()
	temp := float32(1.5)

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", temp).Return("creative answer")
	mockChats.On("Append", ctx, mock.Anything).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello", Temperature: &temp})

	assert.NoError(t, err)
	assert.Equal(t, temp, turn.ExecutionData["temperature"])
}

func TestExecute_WebSearchAugmentsResponse(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, mockSearch := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", true), nil)
	mockLLM.On("GenerateResponse", ctx, "news today", "", float32(0.7)).Return("stale answer").Once()
	mockSearch.On("Search", ctx, "news today", 3).Return(SearchOutcome{
		Status: SearchStatusOK,
		Results: []WebSearchResult{
			{Title: "Headline", Link: "https://n.example", Snippet: "something happened"},
		},
	})
	mockLLM.On("GenerateResponse", ctx, mock.MatchedBy(func(prompt string) bool {
		return prompt != "news today"
	}), "", float32(0.7)).Return("fresh answer").Once()
	mockChats.On("Append", ctx, mock.Anything).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "news today"})

	assert.NoError(t, err)
	assert.Equal(t, "fresh answer", turn.Response)
	assert.Equal(t, true, turn.ExecutionData["web_search_used"])
	mockLLM.AssertNumberOfCalls(t, "GenerateResponse", 2)
}

func TestExecute_WebSearchUnconfiguredKeepsResponse(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, mockSearch := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", true), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", float32(0.7)).Return("plain answer")
	mockSearch.On("Search", ctx, "hello", 3).Return(SearchOutcome{Status: SearchStatusUnconfigured})
	mockChats.On("Append", ctx, mock.Anything).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "plain answer", turn.Response)
	assert.Equal(t, false, turn.ExecutionData["web_search_used"])
	mockLLM.AssertNumberOfCalls(t, "GenerateResponse", 1)
}

func TestExecute_WebSearchFailureKeepsResponse(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, mockSearch := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", true), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", float32(0.7)).Return("plain answer")
	mockSearch.On("Search", ctx, "hello", 3).Return(SearchOutcome{
		Status: SearchStatusFailed,
		Err:    errors.New("serpapi down"),
	})
	mockChats.On("Append", ctx, mock.Anything).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "plain answer", turn.Response)
	assert.Equal(t, "serpapi down", turn.ExecutionData["web_search_error"])
}

func TestExecute_DegradedResponseIsPersisted(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, _ := setupExecutionService()
	ctx := context.Background()

	degraded := "Error: Unable to generate response - provider timeout"
	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", float32(0.7)).Return(degraded)
	mockChats.On("Append", ctx, mock.MatchedBy(func(turn *models.ChatTurn) bool {
		return turn.Response == degraded
	})).Return(nil)

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, degraded, turn.Response)
	assert.Equal(t, true, turn.ExecutionData["degraded"])
	mockChats.AssertExpectations(t)
}

func TestExecute_PersistenceFailureIsFatal(t *testing.T) {
	service, mockWorkflows, mockChats, _, mockLLM, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockLLM.On("GenerateResponse", ctx, "hello", "", float32(0.7)).Return("answer")
	mockChats.On("Append", ctx, mock.Anything).Return(errors.New("redis down"))

	turn, err := service.Execute(ctx, "user-1", "wf-1", &models.ExecuteRequest{Query: "hello"})

	assert.Error(t, err)
	assert.Nil(t, turn)
	assert.Contains(t, err.Error(), "redis down")
}

func TestChatHistory_ReturnsTurnsInOrder(t *testing.T) {
	service, mockWorkflows, mockChats, _, _, _ := setupExecutionService()
	ctx := context.Background()

	turns := []*models.ChatTurn{
		{ID: "t1", Query: "first"},
		{ID: "t2", Query: "second"},
	}
	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "user-1", false), nil)
	mockChats.On("ListByWorkflow", ctx, "wf-1").Return(turns, nil)

	result, err := service.ChatHistory(ctx, "user-1", "wf-1")

	assert.NoError(t, err)
	assert.Equal(t, turns, result)
}

func TestChatHistory_ForeignWorkflowNotFound(t *testing.T) {
	service, mockWorkflows, mockChats, _, _, _ := setupExecutionService()
	ctx := context.Background()

	mockWorkflows.On("Get", ctx, "wf-1").Return(testWorkflow("wf-1", "someone-else", false), nil)

	result, err := service.ChatHistory(ctx, "user-1", "wf-1")

	assert.Nil(t, result)
	assert.True(t, repositories.IsNotFound(err))
	mockChats.AssertNotCalled(t, "ListByWorkflow", mock.Anything, mock.Anything)
}
