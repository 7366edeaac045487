package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gatekeeper/config"
	deliveryhttp "gatekeeper/internal/delivery/http"
	"gatekeeper/internal/delivery/http/cookie"
	httpmiddleware "gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/delivery/http/router"
	"gatekeeper/internal/delivery/http/router/handler"
	"gatekeeper/internal/delivery/middleware"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/infra/auth"
	"gatekeeper/internal/infra/metrics"
	"gatekeeper/internal/infra/pubsub"
	mockSvc "gatekeeper/internal/mocks/service"
	"gatekeeper/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const (
	testOrigin        = "http://localhost:3000"
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

type testServer struct {
	echo  *echo.Echo
	store *memoryStore
	oauth *mockSvc.MockOAuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Origin:  testOrigin,
		Auth:    &config.AuthConfig{BcryptCost: 4},
		Metrics: &config.MetricsConfig{Enabled: true},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = testAccessSecret
	cfg.SecretKey.Refresh = testRefreshSecret

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemoryStore()
	oauth := mockSvc.NewMockOAuthService(t)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Logger: logger,
	})
	require.NoError(t, err)

	sessions := impl.NewSessionService(impl.SessionServiceParams{
		TxManager:    store,
		UserRepo:     store.NewUserRepository(),
		SessionRepo:  store.NewSessionRepository(),
		Hasher:       hasher,
		TokenService: tokens,
		OAuthService: oauth,
		Publisher:    publisher,
		Logger:       logger,
	})
	users := impl.NewUserService(impl.UserServiceParams{
		UserRepo: store.NewUserRepository(),
		Hasher:   hasher,
		Logger:   logger,
	})

	jar := cookie.NewJar(cfg)
	m := metrics.New()

	e := deliveryhttp.NewEcho(deliveryhttp.ServerParams{
		Cfg:               cfg,
		Logger:            logger,
		ErrorMiddleware:   httpmiddleware.NewErrorMiddleware(logger),
		MetricsMiddleware: middleware.NewMetricsMiddleware(m),
		RouterParams: router.RouterParams{
			Config: cfg,
			SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{
				Usecase: sessions,
				Cookies: jar,
				Config:  cfg,
				Logger:  logger,
			}),
			UserHandler:    handler.NewUserHandler(users, logger),
			AuthMiddleware: httpmiddleware.NewAuthMiddleware(tokens, sessions, jar, logger),
			Metrics:        m,
		},
	})

	return &testServer{echo: e, store: store, oauth: oauth}
}

type requestOption func(*http.Request)

func withCookies(cookies ...*http.Cookie) requestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func (s *testServer) do(method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("User-Agent", "scenario-test")
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

const registerJane = `{"name":"Jane Doe","email":"jane.doe@example.com","password":"s3cret!","passwordConfirmation":"s3cret!"}`

func (s *testServer) registerAndLogin(t *testing.T) response.Tokens {
	t.Helper()

	rec := s.do(http.MethodPost, "/api/users", registerJane)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/sessions", `{"email":"jane.doe@example.com","password":"s3cret!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens response.Tokens
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	require.NotNil(t, tokens.AccessToken)
	require.NotNil(t, tokens.RefreshToken)

	return tokens
}

func TestServer_PasswordSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Register
	rec := s.do(http.MethodPost, "/api/users", registerJane)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	var registered response.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "jane.doe@example.com", registered.Email)
	assert.Equal(t, "Jane Doe", registered.Name)

	rec = s.do(http.MethodPost, "/api/users", registerJane)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Account already exists", rec.Body.String())

	rec = s.do(http.MethodPost, "/api/users",
		`{"name":"Jane","email":"other@example.com","password":"s3cret!","passwordConfirmation":"different"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match")

	// Wrong password opens nothing
	rec = s.do(http.MethodPost, "/api/sessions", `{"email":"jane.doe@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", rec.Body.String())
	assert.Zero(t, s.store.sessionCount())

	// Login
	rec = s.do(http.MethodPost, "/api/sessions", `{"email":"jane.doe@example.com","password":"s3cret!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens response.Tokens
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	require.NotNil(t, tokens.AccessToken)
	require.NotNil(t, tokens.RefreshToken)
	assert.NotEqual(t, *tokens.AccessToken, *tokens.RefreshToken)

	accessCookie := responseCookie(rec, cookie.AccessTokenName)
	refreshCookie := responseCookie(rec, cookie.RefreshTokenName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.True(t, accessCookie.HttpOnly)
	assert.Equal(t, *tokens.AccessToken, accessCookie.Value)
	assert.Equal(t, *tokens.RefreshToken, refreshCookie.Value)

	// List sessions, by cookie
	rec = s.do(http.MethodGet, "/api/sessions", "", withCookies(accessCookie, refreshCookie))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sessions []response.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, registered.ID, sessions[0].User)
	assert.Equal(t, "scenario-test", sessions[0].UserAgent)
	assert.True(t, sessions[0].Valid)

	// Me, by bearer header
	rec = s.do(http.MethodGet, "/api/users/me", "", withBearer(*tokens.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me response.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, registered.ID, me.ID)

	// Logout twice
	for range 2 {
		rec = s.do(http.MethodDelete, "/api/sessions", "", withCookies(accessCookie, refreshCookie))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"accessToken":null,"refreshToken":null}`, rec.Body.String())

		cleared := responseCookie(rec, cookie.AccessTokenName)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	}

	// The still-unexpired access token no longer opens protected routes.
	rec = s.do(http.MethodGet, "/api/sessions", "", withBearer(*tokens.AccessToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/me", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Metrics saw the routed requests.
	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/sessions"`)
}

func expiredAccessToken(t *testing.T, valid string) string {
	t.Helper()

	claims := &service.Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(valid, claims)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	claims.IssuedAt = jwt.NewNumericDate(past.Add(-15 * time.Minute))
	claims.ExpiresAt = jwt.NewNumericDate(past)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	return signed
}

func TestServer_SilentRefresh(t *testing.T) {
	t.Run("expired access token is replaced while the session is valid", func(t *testing.T) {
		s := newTestServer(t)
		tokens := s.registerAndLogin(t)
		expired := expiredAccessToken(t, *tokens.AccessToken)

		rec := s.do(http.MethodGet, "/api/users/me", "", withCookies(
			&http.Cookie{Name: cookie.AccessTokenName, Value: expired},
			&http.Cookie{Name: cookie.RefreshTokenName, Value: *tokens.RefreshToken},
		))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		reissued := rec.Header().Get(httpmiddleware.HeaderAccessToken)
		require.NotEmpty(t, reissued)
		assert.NotEqual(t, expired, reissued)

		fresh := responseCookie(rec, cookie.AccessTokenName)
		require.NotNil(t, fresh)
		assert.Equal(t, reissued, fresh.Value)
	})

	t.Run("refresh token in the X-Refresh header", func(t *testing.T) {
		s := newTestServer(t)
		tokens := s.registerAndLogin(t)
		expired := expiredAccessToken(t, *tokens.AccessToken)

		rec := s.do(http.MethodGet, "/api/users/me", "",
			withBearer(expired),
			func(r *http.Request) { r.Header.Set(httpmiddleware.HeaderRefreshToken, *tokens.RefreshToken) },
		)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(httpmiddleware.HeaderAccessToken))
	})

	t.Run("revoked session stays anonymous", func(t *testing.T) {
		s := newTestServer(t)
		tokens := s.registerAndLogin(t)

		rec := s.do(http.MethodDelete, "/api/sessions", "", withBearer(*tokens.AccessToken))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(http.MethodGet, "/api/users/me", "", withCookies(
			&http.Cookie{Name: cookie.AccessTokenName, Value: expiredAccessToken(t, *tokens.AccessToken)},
			&http.Cookie{Name: cookie.RefreshTokenName, Value: *tokens.RefreshToken},
		))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get(httpmiddleware.HeaderAccessToken))
	})

	t.Run("tampered access token is ignored", func(t *testing.T) {
		s := newTestServer(t)
		tokens := s.registerAndLogin(t)

		rec := s.do(http.MethodGet, "/api/users/me", "", withBearer(*tokens.AccessToken+"x"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestServer_GoogleCallback(t *testing.T) {
	profile := &service.OAuthUser{
		ID:            "1234",
		Email:         "jane.doe@gmail.com",
		VerifiedEmail: true,
		Name:          "Jane Doe",
		Picture:       "https://example.com/jane.png",
	}

	t.Run("verified account gets cookies and a redirect", func(t *testing.T) {
		s := newTestServer(t)
		oauthTokens := &service.OAuthTokens{AccessToken: "google-access"}
		s.oauth.EXPECT().ExchangeCode(mock.Anything, "good-code").Return(oauthTokens, nil)
		s.oauth.EXPECT().FetchProfile(mock.Anything, oauthTokens).Return(profile, nil)

		rec := s.do(http.MethodGet, "/api/sessions/oauth/google?code=good-code", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderLocation))

		accessCookie := responseCookie(rec, cookie.AccessTokenName)
		require.NotNil(t, accessCookie)
		require.NotNil(t, responseCookie(rec, cookie.RefreshTokenName))
		assert.Equal(t, 1, s.store.sessionCount())

		rec = s.do(http.MethodGet, "/api/users/me", "", withCookies(accessCookie))
		require.Equal(t, http.StatusOK, rec.Code)

		var me response.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		assert.Equal(t, profile.Email, me.Email)
		assert.Equal(t, profile.Picture, me.Picture)
	})

	t.Run("unverified account is refused", func(t *testing.T) {
		s := newTestServer(t)
		unverified := *profile
		unverified.VerifiedEmail = false
		s.oauth.EXPECT().ExchangeCode(mock.Anything, "code").Return(&service.OAuthTokens{}, nil)
		s.oauth.EXPECT().FetchProfile(mock.Anything, mock.Anything).Return(&unverified, nil)

		rec := s.do(http.MethodGet, "/api/sessions/oauth/google?code=code", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Google account is not verified", rec.Body.String())
		assert.Zero(t, s.store.sessionCount())
	})

	t.Run("exchange failure redirects without cookies", func(t *testing.T) {
		s := newTestServer(t)
		s.oauth.EXPECT().ExchangeCode(mock.Anything, "bad-code").Return(nil, errors.New("invalid_grant"))

		rec := s.do(http.MethodGet, "/api/sessions/oauth/google?code=bad-code", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderLocation))
		assert.Empty(t, rec.Result().Cookies())
		assert.Zero(t, s.store.sessionCount())
	})
}

func TestServer_GoogleAuthorizationURL(t *testing.T) {
	s := newTestServer(t)
	s.oauth.EXPECT().AuthorizationURL("").Return("https://accounts.google.com/o/oauth2/auth?client_id=abc")

	rec := s.do(http.MethodGet, "/api/sessions/oauth/google/url", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://accounts.google.com/o/oauth2/auth?client_id=abc"}`, rec.Body.String())
}

func TestServer_HealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
