package ports

import (
	"context"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// UserMirror is the write-through side channel for the current user
// snapshot (the successor of the legacy localStorage "user" key). It has
// deliberately no read method: the Session Store is the only source of
// truth, and nothing may rehydrate state from the mirror.
type UserMirror interface {
	Write(ctx context.Context, sessionID string, user *domain.User) error
	Delete(ctx context.Context, sessionID string) error
}

// MirrorQueue decouples session-state transitions from mirror I/O. Writes
// are best-effort: implementations may drop under pressure, never block.
type MirrorQueue interface {
	EnqueueWrite(sessionID string, user *domain.User)
	EnqueueDelete(sessionID string)
}
