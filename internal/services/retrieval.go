package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"genai-stack/internal/repositories"
)

const defaultRetrievalTopK = 3

// ChunkSearcher queries stored document chunks by similarity
type ChunkSearcher interface {
	Query(ctx context.Context, collection string, query string, topK int) ([]string, error)
}

// RetrievalAssembler builds the context block for a query by retrieving
// the most similar chunks from each requested document's collection.
type RetrievalAssembler struct {
	store     ChunkSearcher
	documents repositories.DocumentRepository
	topK      int
	logger    *log.Logger
}

// NewRetrievalAssembler creates a new retrieval assembler
func NewRetrievalAssembler(store ChunkSearcher, documents repositories.DocumentRepository, logger *log.Logger) *RetrievalAssembler {
	return &RetrievalAssembler{
		store:     store,
		documents: documents,
		topK:      defaultRetrievalTopK,
		logger:    logger,
	}
}

// AssembleContext retrieves chunks for each document in request order and
// concatenates them into a single context string. A missing or foreign
// document is an error; a document that was never embedded is skipped.
// A retrieval failure for one document degrades to no context from it.
func (r *RetrievalAssembler) AssembleContext(ctx context.Context, userID string, documentIDs []string, query string) (string, error) {
	var sb strings.Builder

	for _, docID := range documentIDs {
		doc, err := r.documents.Get(ctx, docID)
		if err != nil {
			return "", fmt.Errorf("failed to load document %s: %w", docID, err)
		}
		if doc.UserID != userID {
			return "", repositories.NotFoundError("document", docID)
		}
		if doc.EmbeddingID == "" {
			continue
		}

		texts, err := r.store.Query(ctx, doc.EmbeddingID, query, r.topK)
		if err != nil {
			r.logger.Printf("WARNING: retrieval failed for document %s: %v", docID, err)
			continue
		}

		for _, text := range texts {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
