package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches the lookup.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists login sessions. Sessions are never deleted;
// revoked sessions stay behind as an audit trail.
type SessionRepository interface {
	// Create stores a new valid session for userID.
	Create(ctx context.Context, userID uuid.UUID, userAgent string) (*entity.Session, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Find lists the sessions matching filter, newest first.
	Find(ctx context.Context, filter entity.SessionFilter) ([]*entity.Session, error)

	// Update applies patch to the session with id and reports whether a row changed.
	// Setting Valid=false on an already invalid session changes nothing.
	Update(ctx context.Context, id uuid.UUID, patch entity.SessionPatch) (bool, error)
}
