// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert collides with an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the credential store. Every *entity.User it returns is
// free of password material; only FindCredentialsByEmail exposes the hash.
type UserRepository interface {
	// Create inserts a user with an optional password hash and fills the
	// generated ID and timestamps on user. Returns ErrDuplicateEmail on collision.
	Create(ctx context.Context, user *entity.User, passwordHash string) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindCredentialsByEmail is used by password login only.
	FindCredentialsByEmail(ctx context.Context, email string) (*entity.Credentials, error)

	// Update applies patch to the user and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, patch *entity.UserPatch) (*entity.User, error)

	// UpsertByEmail atomically inserts the user or, if the email exists,
	// refreshes its name and picture. The stored password is never touched.
	// Returns the record as it is after the write.
	UpsertByEmail(ctx context.Context, user *entity.User) (*entity.User, error)
}
