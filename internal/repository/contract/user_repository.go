package contract

import (
	"context"

	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindOneUnscoped(ctx context.Context, specs ...specification.Specification) (*entity.User, error) // Includes soft-deleted
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error

	CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uuid.UUID) error

	CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error

	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
}
