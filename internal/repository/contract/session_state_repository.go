package contract

import (
	"context"

	"github.com/google/uuid"

	"shadowwork-be/internal/entity"
)

// SessionStateRepository persists the per-session stage state. Load returns
// (nil, nil) when no state exists yet; the caller starts from the default.
type SessionStateRepository interface {
	Load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.SessionState, error)
	Save(ctx context.Context, state *entity.SessionState) error
}
