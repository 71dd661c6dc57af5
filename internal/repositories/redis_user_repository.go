package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"genai-stack/internal/models"
)

const (
	userKeyPrefix   = "user:"
	userIndexKey    = "users:index"
	userEmailPrefix = "user:email:"
	userNamePrefix  = "user:username:"
)

// RedisUserRepository implements UserRepository using Redis
type RedisUserRepository struct {
	client *redis.Client
}

// NewRedisUserRepository creates a new Redis-backed user repository
func NewRedisUserRepository(client *redis.Client) *RedisUserRepository {
	return &RedisUserRepository{client: client}
}

// Create stores a new user and maintains the email/username indexes
func (r *RedisUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	taken, err := r.Exists(ctx, user.Email, user.Username)
	if err != nil {
		return NewRepositoryError("create_user", "user", user.ID, err, "")
	}
	if taken {
		return AlreadyExistsError("user", user.Email)
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	userJSON, err := json.Marshal(user)
	if err != nil {
		return NewRepositoryError("create_user", "user", user.ID, err, "failed to marshal user")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+user.ID, userJSON, 0)
	pipe.SAdd(ctx, userIndexKey, user.ID)
	pipe.Set(ctx, userEmailPrefix+user.Email, user.ID, 0)
	pipe.Set(ctx, userNamePrefix+user.Username, user.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("create_user", "user", user.ID, err, "failed to execute transaction")
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *RedisUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	userJSON, err := r.client.Get(ctx, userKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, NotFoundError("user", userID)
	}
	if err != nil {
		return nil, NewRepositoryError("get_user", "user", userID, err, "")
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, NewRepositoryError("get_user", "user", userID, err, "failed to unmarshal user")
	}

	return &user, nil
}

// GetByEmail resolves the email index and loads the user
func (r *RedisUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	userID, err := r.client.Get(ctx, userEmailPrefix+email).Result()
	if err == redis.Nil {
		return nil, NotFoundError("user", email)
	}
	if err != nil {
		return nil, NewRepositoryError("get_user_by_email", "user", email, err, "")
	}

	return r.GetByID(ctx, userID)
}

// Exists reports whether the email or username is already registered
func (r *RedisUserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	count, err := r.client.Exists(ctx, userEmailPrefix+email, userNamePrefix+username).Result()
	if err != nil {
		return false, NewRepositoryError("user_exists", "user", email, err, "")
	}
	return count > 0, nil
}

// Ping checks the Redis connection
func (r *RedisUserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
