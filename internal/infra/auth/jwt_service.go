package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"gatekeeper/config"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// Access and refresh tokens use separate secrets, so one kind never verifies as the other.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     15 * time.Minute,
		refreshTTL:    365 * 24 * time.Hour,
		now:           time.Now,
	}
	if cfg.Token != nil {
		if cfg.Token.AccessTTL > 0 {
			svc.accessTTL = cfg.Token.AccessTTL
		}
		if cfg.Token.RefreshTTL > 0 {
			svc.refreshTTL = cfg.Token.RefreshTTL
		}
	}

	return svc, nil
}

func (s *jwtService) GenerateTokens(payload *service.TokenPayload) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.Sign(payload, service.AccessToken)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.Sign(payload, service.RefreshToken)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *jwtService) Sign(payload *service.TokenPayload, kind service.TokenKind) (string, error) {
	if payload == nil || payload.User == nil {
		return "", errors.New("token payload requires a user")
	}

	secret, ttl, err := s.settings(kind)
	if err != nil {
		return "", err
	}

	issuedAt := s.now()
	claims := &service.Claims{
		UserID:        payload.User.ID,
		Email:         payload.User.Email,
		Name:          payload.User.Name,
		Picture:       payload.User.Picture,
		UserCreatedAt: payload.User.CreatedAt,
		UserUpdatedAt: payload.User.UpdatedAt,
		SessionID:     payload.SessionID,
		Kind:          kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.User.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

func (s *jwtService) Verify(tokenString string, kind service.TokenKind) (*service.Claims, error) {
	secret, _, err := s.settings(kind)
	if err != nil {
		return nil, err
	}

	claims := &service.Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Kind != kind {
		return nil, domainerrors.ErrTokenSignatureInvalid.WrapMessage("token kind mismatch")
	}

	return claims, nil
}

func (s *jwtService) TTL(kind service.TokenKind) time.Duration {
	if kind == service.RefreshToken {
		return s.refreshTTL
	}

	return s.accessTTL
}

func (s *jwtService) settings(kind service.TokenKind) (secret []byte, ttl time.Duration, err error) {
	switch kind {
	case service.AccessToken:
		return s.accessSecret, s.accessTTL, nil
	case service.RefreshToken:
		return s.refreshSecret, s.refreshTTL, nil
	default:
		return nil, 0, errors.Errorf("unknown token kind %q", kind)
	}
}

// classifyTokenError maps jwt parser errors onto the three verification failures.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage(err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.ErrTokenSignatureInvalid.WrapMessage(err.Error())
	default:
		return domainerrors.ErrTokenMalformed.WrapMessage(err.Error())
	}
}
