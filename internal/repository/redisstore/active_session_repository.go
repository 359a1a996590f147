package redisstore

import (
	"context"
	"time"

	"techjays-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "active_session:"
	ttl       = 24 * time.Hour
)

// ActiveSessionRepository is the Redis-backed variant, for deployments
// where the active session should survive process restarts. Selected via
// SESSION_STORE=redis.
type ActiveSessionRepository struct {
	rdb *redis.Client
}

func NewActiveSessionRepository(rdb *redis.Client) contract.ActiveSessionRepository {
	return &ActiveSessionRepository{rdb: rdb}
}

func (r *ActiveSessionRepository) Get(ctx context.Context, userId uuid.UUID) (string, bool) {
	val, err := r.rdb.Get(ctx, keyPrefix+userId.String()).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *ActiveSessionRepository) Save(ctx context.Context, userId uuid.UUID, label string) {
	// Best effort: a failed write only costs the remembered label.
	r.rdb.Set(ctx, keyPrefix+userId.String(), label, ttl)
}

func (r *ActiveSessionRepository) Delete(ctx context.Context, userId uuid.UUID) {
	r.rdb.Del(ctx, keyPrefix+userId.String())
}
