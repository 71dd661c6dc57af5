package repositories

import (
	"context"
	"fmt"

	"genai-stack/internal/db"
	"genai-stack/internal/models"
)

// ChromaVectorRepository implements VectorRepository using ChromaDB
type ChromaVectorRepository struct {
	client *db.ChromaDBClient
}

// NewChromaVectorRepository creates a new ChromaDB-backed vector repository
func NewChromaVectorRepository(client *db.ChromaDBClient) *ChromaVectorRepository {
	return &ChromaVectorRepository{client: client}
}

// CollectionExists checks if a collection exists
func (r *ChromaVectorRepository) CollectionExists(ctx context.Context, name string) (bool, error) {
	// The v2 API has no dedicated exists call; a failed lookup means absent
	if _, err := r.client.GetCollection(ctx, name); err != nil {
		return false, nil
	}
	return true, nil
}

// EnsureCollection creates the collection lazily if it does not exist
func (r *ChromaVectorRepository) EnsureCollection(ctx context.Context, name string) error {
	exists, err := r.CollectionExists(ctx, name)
	if err != nil {
		return NewVectorRepositoryError("ensure_collection", err, "")
	}
	if exists {
		return nil
	}

	if _, err := r.client.CreateCollection(ctx, name, nil); err != nil {
		return NewVectorRepositoryError("ensure_collection", err, "failed to create collection: "+name)
	}

	return nil
}

// DeleteCollection deletes a collection and all its chunks
func (r *ChromaVectorRepository) DeleteCollection(ctx context.Context, name string) error {
	if err := r.client.DeleteCollection(ctx, name); err != nil {
		return NewVectorRepositoryError("delete_collection", err, "failed to delete collection: "+name)
	}
	return nil
}

// StoreChunks upserts embedded chunks into a collection
func (r *ChromaVectorRepository) StoreChunks(ctx context.Context, collection string, chunks []*models.EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	documents := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	metadatas := make([]map[string]interface{}, len(chunks))

	for i, chunk := range chunks {
		ids[i] = chunk.ID
		documents[i] = chunk.Text
		embeddings[i] = chunk.Embedding

		metadata := map[string]interface{}{
			"source":      chunk.DocumentID,
			"chunk_index": chunk.ChunkIndex,
		}
		// ChromaDB metadata only supports scalar values
		for k, v := range chunk.Metadata {
			switch v.(type) {
			case string, int, int64, float32, float64, bool:
				metadata[k] = v
			}
		}
		metadatas[i] = metadata
	}

	if err := r.client.AddDocuments(ctx, collection, ids, documents, embeddings, metadatas); err != nil {
		return NewVectorRepositoryError("store_chunks", err, fmt.Sprintf("failed to store %d chunks", len(chunks)))
	}

	return nil
}

// Query returns the topK chunks nearest to the query embedding, most
// similar first. An absent collection yields an empty result, not an error.
func (r *ChromaVectorRepository) Query(ctx context.Context, collection string, queryEmbedding []float32, topK int) ([]*models.RetrievedChunk, error) {
	exists, err := r.CollectionExists(ctx, collection)
	if err != nil {
		return nil, NewVectorRepositoryError("query", err, "")
	}
	if !exists {
		return []*models.RetrievedChunk{}, nil
	}

	results, err := r.client.Query(ctx, collection, [][]float32{queryEmbedding}, topK)
	if err != nil {
		return nil, NewVectorRepositoryError("query", err, "query failed")
	}

	retrieved := make([]*models.RetrievedChunk, 0)
	if len(results.IDs) == 0 {
		return retrieved, nil
	}

	for i := range results.IDs[0] {
		var text string
		if len(results.Documents) > 0 && i < len(results.Documents[0]) {
			text = results.Documents[0][i]
		}

		metadata := map[string]interface{}{}
		if len(results.Metadatas) > 0 && i < len(results.Metadatas[0]) {
			metadata = results.Metadatas[0][i]
		}

		var distance float32
		if len(results.Distances) > 0 && i < len(results.Distances[0]) {
			distance = results.Distances[0][i]
		}

		documentID := ""
		if source, ok := metadata["source"].(string); ok {
			documentID = source
		}

		retrieved = append(retrieved, &models.RetrievedChunk{
			ChunkID:    results.IDs[0][i],
			DocumentID: documentID,
			Text:       text,
			Score:      1.0 - distance, // cosine distance to similarity
			Distance:   distance,
			Metadata:   metadata,
		})
	}

	return retrieved, nil
}

// Ping checks if ChromaDB is alive
func (r *ChromaVectorRepository) Ping(ctx context.Context) error {
	if err := r.client.Heartbeat(ctx); err != nil {
		return NewVectorRepositoryError("ping", err, "ChromaDB heartbeat failed")
	}
	return nil
}

// Close closes the ChromaDB client
func (r *ChromaVectorRepository) Close() error {
	r.client.Close()
	return nil
}
