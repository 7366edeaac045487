package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/cookie"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// HeaderRefreshToken lets non-browser clients send the refresh token.
	HeaderRefreshToken = "X-Refresh"
	// HeaderAccessToken carries a silently re-issued access token back to the client.
	HeaderAccessToken = "X-Access-Token"
)

// AuthMiddleware resolves the caller from its tokens and guards protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	sessions usecase.SessionUsecase
	cookies  *cookie.Jar
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenSvc service.TokenService,
	sessions usecase.SessionUsecase,
	cookies *cookie.Jar,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger,
	}
}

// Deserialize runs on every request and never rejects one. A valid access token
// attaches the principal. An expired one is replaced from the refresh token when
// its session is still valid. Anything else leaves the request anonymous.
func (m *AuthMiddleware) Deserialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessToken := accessTokenFromRequest(c)
		if accessToken == "" {
			return next(c)
		}

		claims, err := m.tokenSvc.Verify(accessToken, service.AccessToken)
		if err == nil {
			deliverycontext.SetPrincipal(c, claims)

			return next(c)
		}

		log := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
		if !errors.Is(err, domainerrors.ErrTokenExpired) {
			log.Debug("Ignoring unusable access token", slog.Any("error", err))

			return next(c)
		}

		refreshToken := refreshTokenFromRequest(c)
		if refreshToken == "" {
			return next(c)
		}

		refreshed, err := m.sessions.RefreshAccessToken(c.Request().Context(), refreshToken)
		if err != nil {
			log.Debug("Access token not re-issued", slog.Any("error", err))

			return next(c)
		}

		claims, err = m.tokenSvc.Verify(refreshed.AccessToken, service.AccessToken)
		if err != nil {
			log.Error("Freshly issued access token does not verify", slog.Any("error", err))

			return next(c)
		}

		m.cookies.SetAccessToken(c, refreshed.AccessToken)
		c.Response().Header().Set(HeaderAccessToken, refreshed.AccessToken)
		deliverycontext.SetPrincipal(c, claims)

		return next(c)
	}
}

// RequireUser rejects anonymous requests with 403.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetPrincipal(c); !ok {
			return errors.Wrap(domainerrors.ErrForbidden, "no principal")
		}

		return next(c)
	}
}

// RequireActiveSession is RequireUser plus a lookup proving the token's session
// has not been revoked since the token was minted.
func (m *AuthMiddleware) RequireActiveSession(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireUser(func(c echo.Context) error {
		claims, _ := deliverycontext.GetPrincipal(c)

		if err := m.sessions.EnsureActiveSession(c.Request().Context(), claims.UserID, claims.SessionID); err != nil {
			if errors.Is(err, domainerrors.ErrSessionInvalid) {
				return errors.Wrap(domainerrors.ErrForbidden, err.Error())
			}

			return errors.Wrap(err, "check session")
		}

		return next(c)
	})
}

func accessTokenFromRequest(c echo.Context) string {
	if token := cookie.Read(c, cookie.AccessTokenName); token != "" {
		return token
	}

	const bearer = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(bearer) && strings.EqualFold(header[:len(bearer)], bearer) {
		return strings.TrimSpace(header[len(bearer):])
	}

	return ""
}

func refreshTokenFromRequest(c echo.Context) string {
	if token := cookie.Read(c, cookie.RefreshTokenName); token != "" {
		return token
	}

	return c.Request().Header.Get(HeaderRefreshToken)
}
