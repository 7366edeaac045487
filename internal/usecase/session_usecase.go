package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required for a user to log in with a password.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
}

// GoogleLoginInput carries the authorization code from the OAuth callback.
type GoogleLoginInput struct {
	Code      string
	UserAgent string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Session      *entity.Session
}

// LogoutInput names the session to revoke. Both ids come from a verified token.
type LogoutInput struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// RefreshAccessTokenOutput is a fresh access token for a still valid session.
type RefreshAccessTokenOutput struct {
	AccessToken string
	User        *entity.User
	Session     *entity.Session
}

// SessionUsecase covers the life of a login session: creating one by password
// or Google, listing, revoking and re-issuing access tokens for it.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*LoginOutput, error)
	GoogleAuthorizationURL(state string) string

	ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)

	// Logout revokes the session. Revoking an already revoked session succeeds.
	Logout(ctx context.Context, input *LogoutInput) error

	// RefreshAccessToken verifies a refresh token and mints a new access token
	// only while its session exists and is valid.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*RefreshAccessTokenOutput, error)

	// EnsureActiveSession fails with ErrSessionInvalid unless the session exists,
	// belongs to userID and is still valid.
	EnsureActiveSession(ctx context.Context, userID, sessionID uuid.UUID) error
}
