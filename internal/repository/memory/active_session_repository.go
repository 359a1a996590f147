package memory

import (
	"context"
	"time"

	"techjays-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ActiveSessionRepository struct {
	cache *cache.Cache
}

func NewActiveSessionRepository() contract.ActiveSessionRepository {
	// Active-session memory survives a day of inactivity; after that the
	// user simply lands back on "Chat 1".
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &ActiveSessionRepository{
		cache: c,
	}
}

func (r *ActiveSessionRepository) Get(ctx context.Context, userId uuid.UUID) (string, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(string), true
	}
	return "", false
}

func (r *ActiveSessionRepository) Save(ctx context.Context, userId uuid.UUID, label string) {
	r.cache.Set(userId.String(), label, cache.DefaultExpiration)
}

func (r *ActiveSessionRepository) Delete(ctx context.Context, userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
