package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are hard-deleted only (session deletion is a purge,
// no soft-delete column on purpose).
type ChatMessage struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_user_session"`
	SessionLabel string    `gorm:"type:varchar(255);index:idx_chat_messages_user_session"`
	Message      string    `gorm:"type:text;not null"`
	Sender       string    `gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
