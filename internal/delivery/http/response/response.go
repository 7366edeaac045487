// Package response holds the JSON shapes written by the HTTP handlers.
package response

import (
	"net/http"
	"time"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// User is the public view of an account. It has no password field at all.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is one login as listed to its owner.
type Session struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Valid     bool      `json:"valid"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tokens is returned by login and, with both fields nil, by logout.
type Tokens struct {
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
}

// AuthorizationURL is the Google consent page the client should navigate to.
type AuthorizationURL struct {
	URL string `json:"url"`
}

// Health is the liveness payload.
type Health struct {
	Status string `json:"status"`
}

// FromUser maps a domain user to its public view.
func FromUser(u *entity.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromSessions maps domain sessions, keeping order.
func FromSessions(sessions []*entity.Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, Session{
			ID:        s.ID,
			User:      s.UserID,
			Valid:     s.Valid,
			UserAgent: s.UserAgent,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return out
}

// NewTokens pairs the two tokens for the login response.
func NewTokens(accessToken, refreshToken string) Tokens {
	return Tokens{AccessToken: &accessToken, RefreshToken: &refreshToken}
}

// Text writes a plain-text body, the format used for public error messages.
func Text(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.String(statusCode, message)
}

// ValidationFailed writes the 400 body listing every rejected field.
func ValidationFailed(c echo.Context, fields []domainerrors.FieldError) error {
	return c.JSON(http.StatusBadRequest, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    domainerrors.ErrValidationFailed.ErrorCode(),
			Message: domainerrors.ErrValidationFailed.Message(),
			Fields:  fields,
		},
		RequestID: deliverycontext.GetRequestID(c),
	})
}
