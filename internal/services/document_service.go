package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

const documentKeywordLimit = 10

// DocumentEmbedder embeds document chunks into per-document collections
type DocumentEmbedder interface {
	AddDocument(ctx context.Context, collection string, chunks []string, documentID string) error
	DeleteCollection(ctx context.Context, collection string) error
}

// DocumentService handles PDF uploads: text extraction, chunking,
// keyword tagging, embedding and metadata persistence.
type DocumentService struct {
	docs         repositories.DocumentRepository
	embeddings   DocumentEmbedder
	keywords     *KeywordExtractor
	uploadDir    string
	chunkSize    int
	chunkOverlap int
	logger       *log.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docs repositories.DocumentRepository,
	embeddings DocumentEmbedder,
	keywords *KeywordExtractor,
	uploadDir string,
	logger *log.Logger,
) *DocumentService {
	return &DocumentService{
		docs:         docs,
		embeddings:   embeddings,
		keywords:     keywords,
		uploadDir:    uploadDir,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		logger:       logger,
	}
}

// Upload stores a PDF, extracts and chunks its text, embeds the chunks
// and persists the document record. Embedding failure does not fail the
// upload; the document is kept with a failed status for later retry.
func (s *DocumentService) Upload(ctx context.Context, userID string, filename string, content []byte) (*models.Document, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, &models.ValidationError{Field: "file", Message: "only PDF files are supported"}
	}
	if len(content) == 0 {
		return nil, &models.ValidationError{Field: "file", Message: "file is empty"}
	}

	docID := uuid.New().String()

	filePath, err := s.saveFile(docID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	text := ExtractPDFText(content)

	chunks, err := ChunkText(text, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk document: %w", err)
	}

	keywords, err := s.keywords.Extract(text, documentKeywordLimit)
	if err != nil {
		s.logger.Printf("WARNING: keyword extraction failed for %s: %v", filename, err)
		keywords = nil
	}

	now := time.Now()
	doc := &models.Document{
		ID:          docID,
		UserID:      userID,
		Filename:    filename,
		FilePath:    filePath,
		FileSize:    int64(len(content)),
		ContentType: "application/pdf",
		TextContent: text,
		ChunkCount:  len(chunks),
		Keywords:    keywords,
		Status:      models.DocumentStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document record: %w", err)
	}

	if len(chunks) == 0 {
		doc.Status = models.DocumentStatusCompleted
	} else {
		collection := "doc_" + docID
		if err := s.embeddings.AddDocument(ctx, collection, chunks, docID); err != nil {
			s.logger.Printf("WARNING: embedding failed for document %s: %v", docID, err)
			doc.Status = models.DocumentStatusFailed
		} else {
			doc.EmbeddingID = collection
			doc.Status = models.DocumentStatusCompleted
		}
	}

	doc.UpdatedAt = time.Now()
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document record: %w", err)
	}

	s.logger.Printf("Uploaded document %s (%s): %d chunks, status %s", docID, filename, doc.ChunkCount, doc.Status)
	return doc, nil
}

func (s *DocumentService) saveFile(docID string, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, docID+"_"+filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Get returns a document owned by the user
func (s *DocumentService) Get(ctx context.Context, userID string, documentID string) (*models.Document, error) {
	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, repositories.NotFoundError("document", documentID)
	}
	return doc, nil
}

// List returns all documents owned by the user, newest first
func (s *DocumentService) List(ctx context.Context, userID string) ([]*models.Document, error) {
	return s.docs.ListByUser(ctx, userID)
}

// Delete removes a document, its stored file and its vector collection.
// Collection and file cleanup are best effort; record deletion is not.
func (s *DocumentService) Delete(ctx context.Context, userID string, documentID string) error {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if doc.EmbeddingID != "" {
		if err := s.embeddings.DeleteCollection(ctx, doc.EmbeddingID); err != nil {
			s.logger.Printf("WARNING: failed to delete collection %s: %v", doc.EmbeddingID, err)
		}
	}
	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Printf("WARNING: failed to remove file %s: %v", doc.FilePath, err)
		}
	}

	return s.docs.Delete(ctx, documentID)
}
