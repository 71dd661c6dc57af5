package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// Embedder computes fixed-dimension vectors for text
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder implements Embedder using the Gemini embedding API
type GeminiEmbedder struct {
	model *genai.EmbeddingModel
}

// NewGeminiEmbedder creates an embedder backed by the given Gemini model
func NewGeminiEmbedder(client *genai.Client, modelName string) *GeminiEmbedder {
	return &GeminiEmbedder{model: client.EmbeddingModel(modelName)}
}

// EmbedTexts embeds a batch of texts in a single API call
func (e *GeminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batch := e.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := e.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("batch embed failed: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(res.Embeddings), len(texts))
	}

	embeddings := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		embeddings[i] = emb.Values
	}
	return embeddings, nil
}

// EmbedQuery embeds a single query string
func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	res, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("embed query returned no embedding")
	}
	return res.Embedding.Values, nil
}
