package services

import (
	"strings"

	"genai-stack/internal/models"
)

// Default chunking parameters for uploaded documents
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// ChunkText splits text into overlapping windows of size characters,
// advancing size-overlap characters per step. Windows that are empty
// after trimming are dropped; the rest preserve original text order.
// Requires 0 <= overlap < size so every step advances.
func ChunkText(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, &models.ValidationError{Field: "chunk_size", Message: "chunk size must be positive"}
	}
	if overlap < 0 || overlap >= size {
		return nil, &models.ValidationError{Field: "chunk_overlap", Message: "overlap must satisfy 0 <= overlap < size"}
	}

	runes := []rune(text)
	step := size - overlap

	chunks := make([]string, 0)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, window)
		}
	}

	return chunks, nil
}
