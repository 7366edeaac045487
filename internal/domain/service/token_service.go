package service

import (
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects the signing secret and lifetime of a token.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenPayload is what a token asserts: who the caller is and which session it belongs to.
type TokenPayload struct {
	User      *entity.User
	SessionID uuid.UUID
}

// Claims is the signed body of a token: the user view, the session id and
// the token kind, next to the registered iat/exp claims.
type Claims struct {
	UserID        uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Picture       string    `json:"picture,omitempty"`
	UserCreatedAt time.Time `json:"createdAt"`
	UserUpdatedAt time.Time `json:"updatedAt"`
	SessionID     uuid.UUID `json:"session"`
	Kind          TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// User rebuilds the user view carried by the token.
func (c *Claims) User() *entity.User {
	return &entity.User{
		ID:        c.UserID,
		Email:     c.Email,
		Name:      c.Name,
		Picture:   c.Picture,
		CreatedAt: c.UserCreatedAt,
		UpdatedAt: c.UserUpdatedAt,
	}
}

// TokenService signs and verifies access and refresh tokens.
type TokenService interface {
	// Sign mints a token of the given kind for payload.
	Sign(payload *TokenPayload, kind TokenKind) (string, error)

	// GenerateTokens mints an access and a refresh token for the same payload.
	GenerateTokens(payload *TokenPayload) (accessToken string, refreshToken string, err error)

	// Verify checks signature, expiry and kind. Failures are reported as
	// ErrTokenExpired, ErrTokenMalformed or ErrTokenSignatureInvalid.
	Verify(tokenString string, kind TokenKind) (*Claims, error)

	// TTL returns the configured lifetime of tokens of the given kind.
	TTL(kind TokenKind) time.Duration
}
