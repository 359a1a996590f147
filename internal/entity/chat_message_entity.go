package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one row of a conversation. Messages are grouped into
// sessions by (UserId, SessionLabel); the label is rewritten in bulk
// exactly once, when the session is auto-named after its first user
// message. Display order within a session is CreatedAt order.
type ChatMessage struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	SessionLabel string // empty on legacy rows; excluded from listings
	Message      string
	Sender       string // "user" | "bot"
	CreatedAt    time.Time
}
