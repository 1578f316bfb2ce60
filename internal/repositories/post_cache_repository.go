package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/wayra-app/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// PostCacheRepository defines the interface for the popular-post cache.
// Entries are written only by the periodic refresh; post edits and deletes do
// not invalidate them, so a cached copy may lag the document store until its
// TTL runs out.
type PostCacheRepository interface {
	SetPost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int) (*models.Post, error)
}

// RedisPostCacheRepository implements PostCacheRepository on Redis
type RedisPostCacheRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPostCacheRepository creates a new RedisPostCacheRepository
func NewRedisPostCacheRepository(rdb *redis.Client, ttl time.Duration) *RedisPostCacheRepository {
	return &RedisPostCacheRepository{rdb: rdb, ttl: ttl}
}

// SetPost stores the full post object under post:{id} with the cache TTL
func (r *RedisPostCacheRepository) SetPost(ctx context.Context, post *models.Post) error {
	postJSON, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, PostKey(post.ID), postJSON, r.ttl).Err()
}

// GetPost retrieves a cached post, or ErrCacheMiss if absent
func (r *RedisPostCacheRepository) GetPost(ctx context.Context, id int) (*models.Post, error) {
	value, err := r.rdb.Get(ctx, PostKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var post models.Post
	if err := json.Unmarshal([]byte(value), &post); err != nil {
		return nil, err
	}
	return &post, nil
}
