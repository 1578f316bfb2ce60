package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionRepository defines the interface for opaque-token session tracking.
// Sessions carry a sliding TTL: Touch resets the expiry back to the full window.
type SessionRepository interface {
	CreateSession(ctx context.Context, userSub uint) (string, error)
	ValidateSession(ctx context.Context, sessionID string) (uint, error)
	TouchSession(ctx context.Context, sessionID string) error
	DestroySession(ctx context.Context, sessionID string) error
}

// RedisSessionRepository implements SessionRepository on Redis
type RedisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionRepository creates a new RedisSessionRepository
func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

// CreateSession stores a new session keyed by a random opaque token and
// returns that token
func (r *RedisSessionRepository) CreateSession(ctx context.Context, userSub uint) (string, error) {
	sessionID := uuid.NewString()
	value := strconv.FormatUint(uint64(userSub), 10)
	if err := r.rdb.Set(ctx, SessionKey(sessionID), value, r.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// ValidateSession resolves a session token to the user sub it belongs to
func (r *RedisSessionRepository) ValidateSession(ctx context.Context, sessionID string) (uint, error) {
	value, err := r.rdb.Get(ctx, SessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionInvalid
		}
		return 0, err
	}

	sub, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, ErrSessionInvalid
	}
	return uint(sub), nil
}

// TouchSession resets the session's TTL back to the full window
func (r *RedisSessionRepository) TouchSession(ctx context.Context, sessionID string) error {
	ok, err := r.rdb.Expire(ctx, SessionKey(sessionID), r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionInvalid
	}
	return nil
}

// DestroySession removes the session. Destroying an absent session is not an error.
func (r *RedisSessionRepository) DestroySession(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, SessionKey(sessionID)).Err()
}
