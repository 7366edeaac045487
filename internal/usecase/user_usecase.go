// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
// The password is plaintext here; it is hashed before it reaches the store.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput is a partial profile update. Nil fields are left untouched,
// and the password is re-hashed only when it is supplied.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Name     *string
	Picture  *string
	Password *string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)
}
