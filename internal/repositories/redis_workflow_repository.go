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
	workflowKeyPrefix   = "workflow:"
	userWorkflowsPrefix = "user:"
	userWorkflowsSuffix = ":workflows"
)

func userWorkflowsKey(userID string) string {
	return userWorkflowsPrefix + userID + userWorkflowsSuffix
}

// RedisWorkflowRepository implements WorkflowRepository using Redis
type RedisWorkflowRepository struct {
	client *redis.Client
}

// NewRedisWorkflowRepository creates a new Redis-backed workflow repository
func NewRedisWorkflowRepository(client *redis.Client) *RedisWorkflowRepository {
	return &RedisWorkflowRepository{client: client}
}

// Create stores a new workflow and adds it to the owner's index
func (r *RedisWorkflowRepository) Create(ctx context.Context, workflow *models.Workflow) error {
	if err := workflow.Validate(); err != nil {
		return err
	}

	now := time.Now()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	wfJSON, err := json.Marshal(workflow)
	if err != nil {
		return NewRepositoryError("create_workflow", "workflow", workflow.ID, err, "failed to marshal workflow")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, workflowKeyPrefix+workflow.ID, wfJSON, 0)
	pipe.SAdd(ctx, userWorkflowsKey(workflow.UserID), workflow.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("create_workflow", "workflow", workflow.ID, err, "failed to execute transaction")
	}

	return nil
}

// Get retrieves a workflow by ID
func (r *RedisWorkflowRepository) Get(ctx context.Context, workflowID string) (*models.Workflow, error) {
	wfJSON, err := r.client.Get(ctx, workflowKeyPrefix+workflowID).Result()
	if err == redis.Nil {
		return nil, NotFoundError("workflow", workflowID)
	}
	if err != nil {
		return nil, NewRepositoryError("get_workflow", "workflow", workflowID, err, "")
	}

	var workflow models.Workflow
	if err := json.Unmarshal([]byte(wfJSON), &workflow); err != nil {
		return nil, NewRepositoryError("get_workflow", "workflow", workflowID, err, "failed to unmarshal workflow")
	}

	return &workflow, nil
}

// ListByUser returns all workflows owned by a user, newest first
func (r *RedisWorkflowRepository) ListByUser(ctx context.Context, userID string) ([]*models.Workflow, error) {
	ids, err := r.client.SMembers(ctx, userWorkflowsKey(userID)).Result()
	if err != nil {
		return nil, NewRepositoryError("list_workflows", "workflow", userID, err, "")
	}

	workflows := make([]*models.Workflow, 0, len(ids))
	for _, id := range ids {
		workflow, err := r.Get(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				// Stale index entry; skip
				continue
			}
			return nil, err
		}
		workflows = append(workflows, workflow)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.After(workflows[j].CreatedAt)
	})

	return workflows, nil
}

// Update replaces a stored workflow
func (r *RedisWorkflowRepository) Update(ctx context.Context, workflow *models.Workflow) error {
	if err := workflow.Validate(); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, workflowKeyPrefix+workflow.ID).Result()
	if err != nil {
		return NewRepositoryError("update_workflow", "workflow", workflow.ID, err, "")
	}
	if exists == 0 {
		return NotFoundError("workflow", workflow.ID)
	}

	workflow.UpdatedAt = time.Now()

	wfJSON, err := json.Marshal(workflow)
	if err != nil {
		return NewRepositoryError("update_workflow", "workflow", workflow.ID, err, "failed to marshal workflow")
	}

	if err := r.client.Set(ctx, workflowKeyPrefix+workflow.ID, wfJSON, 0).Err(); err != nil {
		return NewRepositoryError("update_workflow", "workflow", workflow.ID, err, "")
	}

	return nil
}

// Delete removes a workflow and its owner index entry
func (r *RedisWorkflowRepository) Delete(ctx context.Context, workflowID string) error {
	workflow, err := r.Get(ctx, workflowID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, workflowKeyPrefix+workflowID)
	pipe.SRem(ctx, userWorkflowsKey(workflow.UserID), workflowID)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("delete_workflow", "workflow", workflowID, err, "failed to execute transaction")
	}

	return nil
}
