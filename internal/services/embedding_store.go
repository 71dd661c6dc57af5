package services

import (
	"context"
	"fmt"
	"log"

	"genai-stack/internal/models"
	"genai-stack/internal/repositories"
)

// EmbeddingStore embeds document chunks and persists them in per-document
// vector collections. A document's chunks are stored all-or-nothing: if
// embedding or storage fails partway, a collection created for this call
// is deleted so no partial state survives.
type EmbeddingStore struct {
	embedder Embedder
	vectors  repositories.VectorRepository
	logger   *log.Logger
}

// NewEmbeddingStore creates a new embedding store
func NewEmbeddingStore(embedder Embedder, vectors repositories.VectorRepository, logger *log.Logger) *EmbeddingStore {
	return &EmbeddingStore{
		embedder: embedder,
		vectors:  vectors,
		logger:   logger,
	}
}

// AddDocument embeds the given chunks and stores them in the named
// collection under ids derived from the document ID
func (s *EmbeddingStore) AddDocument(ctx context.Context, collection string, chunks []string, documentID string) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to embed for document %s", documentID)
	}

	existedBefore, err := s.vectors.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", collection, err)
	}

	if err := s.vectors.EnsureCollection(ctx, collection); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", collection, err)
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		s.rollback(ctx, collection, existedBefore)
		return fmt.Errorf("failed to embed chunks for document %s: %w", documentID, err)
	}

	embedded := make([]*models.EmbeddedChunk, len(chunks))
	for i, text := range chunks {
		embedded[i] = &models.EmbeddedChunk{
			ID:         fmt.Sprintf("%s_chunk_%d", documentID, i),
			DocumentID: documentID,
			Text:       text,
			Embedding:  embeddings[i],
			ChunkIndex: i,
			Metadata:   map[string]interface{}{"source": documentID},
		}
	}

	if err := s.vectors.StoreChunks(ctx, collection, embedded); err != nil {
		s.rollback(ctx, collection, existedBefore)
		return fmt.Errorf("failed to store chunks for document %s: %w", documentID, err)
	}

	s.logger.Printf("Stored %d chunks for document %s in collection %s", len(embedded), documentID, collection)
	return nil
}

// rollback removes a collection created during a failed AddDocument call.
// Collections that existed before the call are left alone.
func (s *EmbeddingStore) rollback(ctx context.Context, collection string, existedBefore bool) {
	if existedBefore {
		return
	}
	if err := s.vectors.DeleteCollection(ctx, collection); err != nil {
		s.logger.Printf("WARNING: failed to roll back collection %s: %v", collection, err)
	}
}

// Query embeds the query text and returns the texts of the topK most
// similar chunks in the collection. An absent collection yields an empty
// result rather than an error.
func (s *EmbeddingStore) Query(ctx context.Context, collection string, query string, topK int) ([]string, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := s.vectors.Query(ctx, collection, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	return texts, nil
}

// DeleteCollection removes a document's collection entirely
func (s *EmbeddingStore) DeleteCollection(ctx context.Context, collection string) error {
	return s.vectors.DeleteCollection(ctx, collection)
}
