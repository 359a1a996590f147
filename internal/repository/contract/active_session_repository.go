package contract

import (
	"context"

	"github.com/google/uuid"
)

// ActiveSessionRepository remembers which session label a user last had
// open. It replaces the framework session store of a classic server-side
// web app with an explicit key-value association owned by the caller.
type ActiveSessionRepository interface {
	Get(ctx context.Context, userId uuid.UUID) (string, bool)
	Save(ctx context.Context, userId uuid.UUID, label string)
	Delete(ctx context.Context, userId uuid.UUID)
}
