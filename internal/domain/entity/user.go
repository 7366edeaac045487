// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account as seen by everything outside the credential store.
// It never carries the password hash.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // Unique login identifier, compared as stored.
	Name      string    // Display name.
	Picture   string    // Avatar URL, filled by federated logins.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credentials pairs a user with its stored password hash. Only the password
// login path reads it. PasswordHash is empty for federation-only accounts.
type Credentials struct {
	User         *User
	PasswordHash string
}

// HasPassword reports whether the account can log in with a password.
func (c *Credentials) HasPassword() bool {
	return c != nil && c.PasswordHash != ""
}

// UserPatch is a partial update. Nil fields are left untouched.
// PasswordHash must already be hashed; the store never hashes.
type UserPatch struct {
	Name         *string
	Picture      *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *UserPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Picture == nil && p.PasswordHash == nil)
}
