package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"genai-stack/internal/models"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) Create(ctx context.Context, workflow *models.Workflow) error {
	args := m.Called(ctx, workflow)
	return args.Error(0)
}

func (m *MockWorkflowRepository) Get(ctx context.Context, workflowID string) (*models.Workflow, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) ListByUser(ctx context.Context, userID string) ([]*models.Workflow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) Update(ctx context.Context, workflow *models.Workflow) error {
	args := m.Called(ctx, workflow)
	return args.Error(0)
}

func (m *MockWorkflowRepository) Delete(ctx context.Context, workflowID string) error {
	args := m.Called(ctx, workflowID)
	return args.Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, documentID string) (*models.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *MockChatRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ChatTurn, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatTurn), args.Error(1)
}

func (m *MockChatRepository) DeleteByWorkflow(ctx context.Context, workflowID string) error {
	args := m.Called(ctx, workflowID)
	return args.Error(0)
}

type MockVectorRepository struct {
	mock.Mock
}

func (m *MockVectorRepository) EnsureCollection(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockVectorRepository) CollectionExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockVectorRepository) DeleteCollection(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockVectorRepository) StoreChunks(ctx context.Context, collection string, chunks []*models.EmbeddedChunk) error {
	args := m.Called(ctx, collection, chunks)
	return args.Error(0)
}

func (m *MockVectorRepository) Query(ctx context.Context, collection string, queryEmbedding []float32, topK int) ([]*models.RetrievedChunk, error) {
	args := m.Called(ctx, collection, queryEmbedding, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RetrievedChunk), args.Error(1)
}

func (m *MockVectorRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockVectorRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ============================================================================
// Mock Services
// ============================================================================

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockChunkSearcher struct {
	mock.Mock
}

func (m *MockChunkSearcher) Query(ctx context.Context, collection string, query string, topK int) ([]string, error) {
	args := m.Called(ctx, collection, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockContextRetriever struct {
	mock.Mock
}

func (m *MockContextRetriever) AssembleContext(ctx context.Context, userID string, documentIDs []string, query string) (string, error) {
	args := m.Called(ctx, userID, documentIDs, query)
	return args.String(0), args.Error(1)
}

type MockResponseGenerator struct {
	mock.Mock
}

func (m *MockResponseGenerator) GenerateResponse(ctx context.Context, query string, contextText string, temperature float32) string {
	args := m.Called(ctx, query, contextText, temperature)
	return args.String(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	args := m.Called(ctx, prompt, temperature, maxTokens)
	return args.String(0), args.Error(1)
}

type MockWebSearcher struct {
	mock.Mock
}

func (m *MockWebSearcher) Search(ctx context.Context, query string, limit int) SearchOutcome {
	args := m.Called(ctx, query, limit)
	return args.Get(0).(SearchOutcome)
}

type MockDocumentEmbedder struct {
	mock.Mock
}

func (m *MockDocumentEmbedder) AddDocument(ctx context.Context, collection string, chunks []string, documentID string) error {
	args := m.Called(ctx, collection, chunks, documentID)
	return args.Error(0)
}

func (m *MockDocumentEmbedder) DeleteCollection(ctx context.Context, collection string) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}
