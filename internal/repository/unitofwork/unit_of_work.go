package unitofwork

import (
	"context"

	"techjays-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
