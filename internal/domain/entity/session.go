package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of one login. Tokens reference it by ID,
// so revoking the session revokes every token minted for it.
// Valid only ever moves from true to false.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserAgent string
	Valid     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionFilter selects sessions for a user. A nil Valid matches both states.
type SessionFilter struct {
	UserID uuid.UUID
	Valid  *bool
}

// SessionPatch is a partial session update.
type SessionPatch struct {
	Valid *bool
}

// Bool returns a pointer to b, for filters and patches.
func Bool(b bool) *bool {
	return &b
}
