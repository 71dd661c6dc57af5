package models

import (
	"time"
)

// DocumentStatus represents the processing state of a document
type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document represents an uploaded document and its embedding state.
//
// EmbeddingID is set only after every chunk of the document has been
// embedded and stored; a document with ChunkCount > 0 and an empty
// EmbeddingID failed embedding and needs a retry.
type Document struct {
	ID          string         `json:"document_id"`
	UserID      string         `json:"user_id"`
	Filename    string         `json:"filename"`
	FilePath    string         `json:"file_path"`
	FileSize    int64          `json:"file_size"`
	ContentType string         `json:"content_type"`
	TextContent string         `json:"text_content,omitempty"`
	EmbeddingID string         `json:"embedding_id,omitempty"`
	ChunkCount  int            `json:"chunk_count"`
	Keywords    []string       `json:"keywords,omitempty"`
	Status      DocumentStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentDTO represents the API view of a document (text content omitted)
type DocumentDTO struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Filename    string   `json:"filename"`
	FileSize    int64    `json:"file_size"`
	ContentType string   `json:"content_type"`
	ChunkCount  int      `json:"chunks_count"`
	Keywords    []string `json:"keywords,omitempty"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ToDTO converts Document domain model to DTO
func (d *Document) ToDTO() DocumentDTO {
	return DocumentDTO{
		ID:          d.ID,
		UserID:      d.UserID,
		Filename:    d.Filename,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		ChunkCount:  d.ChunkCount,
		Keywords:    d.Keywords,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

// Validate checks if the document record is storable
func (d *Document) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Message: "document ID is required"}
	}
	if d.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "user ID is required"}
	}
	if d.Filename == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}
	if d.ChunkCount < 0 {
		return &ValidationError{Field: "chunk_count", Message: "chunk count cannot be negative"}
	}
	return nil
}

// EmbeddedChunk represents a chunk with its vector, ready for storage
type EmbeddedChunk struct {
	ID         string                 `json:"id"`
	DocumentID string                 `json:"document_id"`
	Text       string                 `json:"text"`
	Embedding  []float32              `json:"embedding"`
	ChunkIndex int                    `json:"chunk_index"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// RetrievedChunk represents a chunk returned by similarity search
type RetrievedChunk struct {
	ChunkID    string                 `json:"chunk_id"`
	DocumentID string                 `json:"document_id"`
	Text       string                 `json:"text"`
	Score      float32                `json:"score"`
	Distance   float32                `json:"distance"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
