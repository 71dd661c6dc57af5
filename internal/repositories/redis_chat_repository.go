package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"genai-stack/internal/models"
)

const workflowChatSuffix = ":chat"

func workflowChatKey(workflowID string) string {
	return "workflow:" + workflowID + workflowChatSuffix
}

// RedisChatRepository implements ChatRepository using a sorted set per
// workflow, scored by creation time so history reads back in order.
type RedisChatRepository struct {
	client *redis.Client
}

// NewRedisChatRepository creates a new Redis-backed chat repository
func NewRedisChatRepository(client *redis.Client) *RedisChatRepository {
	return &RedisChatRepository{client: client}
}

// Append stores a chat turn at the end of the workflow's history
func (r *RedisChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	if err := turn.Validate(); err != nil {
		return err
	}

	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	turnJSON, err := json.Marshal(turn)
	if err != nil {
		return NewRepositoryError("append_turn", "chat_turn", turn.ID, err, "failed to marshal chat turn")
	}

	err = r.client.ZAdd(ctx, workflowChatKey(turn.WorkflowID), redis.Z{
		Score:  float64(turn.CreatedAt.UnixNano()),
		Member: turnJSON,
	}).Err()
	if err != nil {
		return NewRepositoryError("append_turn", "chat_turn", turn.ID, err, "")
	}

	return nil
}

// ListByWorkflow returns the workflow's chat history in creation order
func (r *RedisChatRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ChatTurn, error) {
	members, err := r.client.ZRange(ctx, workflowChatKey(workflowID), 0, -1).Result()
	if err != nil {
		return nil, NewRepositoryError("list_turns", "chat_turn", workflowID, err, "")
	}

	turns := make([]*models.ChatTurn, 0, len(members))
	for _, member := range members {
		var turn models.ChatTurn
		if err := json.Unmarshal([]byte(member), &turn); err != nil {
			return nil, NewRepositoryError("list_turns", "chat_turn", workflowID, err, "failed to unmarshal chat turn")
		}
		turns = append(turns, &turn)
	}

	return turns, nil
}

// DeleteByWorkflow removes the entire history for a workflow
func (r *RedisChatRepository) DeleteByWorkflow(ctx context.Context, workflowID string) error {
	if err := r.client.Del(ctx, workflowChatKey(workflowID)).Err(); err != nil {
		return NewRepositoryError("delete_turns", "chat_turn", workflowID, err, "")
	}
	return nil
}
