package contract

import (
	"context"

	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DistinctSessionLabels returns the non-empty labels owned by a user.
	DistinctSessionLabels(ctx context.Context, userId uuid.UUID) ([]string, error)

	// LatestSessionLabel returns the label of the newest row (by
	// created_at) owned by the user, or "" when the user has no rows.
	LatestSessionLabel(ctx context.Context, userId uuid.UUID) (string, error)

	// RetargetSessionLabel rewrites every row of (userId, oldLabel) to
	// newLabel in one bulk update. This is the only place session labels
	// are ever rewritten.
	RetargetSessionLabel(ctx context.Context, userId uuid.UUID, oldLabel, newLabel string) error

	// DeleteBySessionLabel hard-deletes a conversation and reports how
	// many rows were removed.
	DeleteBySessionLabel(ctx context.Context, userId uuid.UUID, label string) (int64, error)

	// DeleteAllByUserId purges every chat row of a user (account deletion).
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}
