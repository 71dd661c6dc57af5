package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"genai-stack/internal/models"
)

const (
	documentKeyPrefix   = "document:"
	userDocumentsSuffix = ":documents"
)

func userDocumentsKey(userID string) string {
	return "user:" + userID + userDocumentsSuffix
}

// RedisDocumentRepository implements DocumentRepository using Redis
type RedisDocumentRepository struct {
	client *redis.Client
}

// NewRedisDocumentRepository creates a new Redis-backed document repository
func NewRedisDocumentRepository(client *redis.Client) *RedisDocumentRepository {
	return &RedisDocumentRepository{client: client}
}

// Create stores a new document record and adds it to the owner's index
func (r *RedisDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, documentKeyPrefix+doc.ID).Result()
	if err != nil {
		return NewRepositoryError("create_document", "document", doc.ID, err, "")
	}
	if exists > 0 {
		return AlreadyExistsError("document", doc.ID)
	}

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return NewRepositoryError("create_document", "document", doc.ID, err, "failed to marshal document")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, documentKeyPrefix+doc.ID, docJSON, 0)
	pipe.SAdd(ctx, userDocumentsKey(doc.UserID), doc.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("create_document", "document", doc.ID, err, "failed to execute transaction")
	}

	return nil
}

// Get retrieves a document by ID
func (r *RedisDocumentRepository) Get(ctx context.Context, documentID string) (*models.Document, error) {
	docJSON, err := r.client.Get(ctx, documentKeyPrefix+documentID).Result()
	if err == redis.Nil {
		return nil, NotFoundError("document", documentID)
	}
	if err != nil {
		return nil, NewRepositoryError("get_document", "document", documentID, err, "")
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, NewRepositoryError("get_document", "document", documentID, err, "failed to unmarshal document")
	}

	return &doc, nil
}

// ListByUser returns all documents owned by a user, newest first
func (r *RedisDocumentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Document, error) {
	ids, err := r.client.SMembers(ctx, userDocumentsKey(userID)).Result()
	if err != nil {
		return nil, NewRepositoryError("list_documents", "document", userID, err, "")
	}

	docs := make([]*models.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.Get(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	return docs, nil
}

// Update replaces a stored document record
func (r *RedisDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, documentKeyPrefix+doc.ID).Result()
	if err != nil {
		return NewRepositoryError("update_document", "document", doc.ID, err, "")
	}
	if exists == 0 {
		return NotFoundError("document", doc.ID)
	}

	doc.UpdatedAt = time.Now()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return NewRepositoryError("update_document", "document", doc.ID, err, "failed to marshal document")
	}

	if err := r.client.Set(ctx, documentKeyPrefix+doc.ID, docJSON, 0).Err(); err != nil {
		return NewRepositoryError("update_document", "document", doc.ID, err, "")
	}

	return nil
}

// Delete removes a document record and its owner index entry
func (r *RedisDocumentRepository) Delete(ctx context.Context, documentID string) error {
	doc, err := r.Get(ctx, documentID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, documentKeyPrefix+documentID)
	pipe.SRem(ctx, userDocumentsKey(doc.UserID), documentID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("delete_document", "document", documentID, err, "failed to execute transaction")
	}

	return nil
}
