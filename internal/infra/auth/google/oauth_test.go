package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"gatekeeper/config"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, tokenURL, userInfoEndpoint string, timeout time.Duration) service.OAuthService {
	t.Helper()

	return NewOAuthService(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:         "client-id",
			ClientSecret:     "client-secret",
			RedirectURI:      "http://localhost:1337/api/sessions/oauth/google",
			TokenURL:         tokenURL,
			UserInfoEndpoint: userInfoEndpoint,
			Timeout:          timeout,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestOAuthService_AuthorizationURL(t *testing.T) {
	svc := newTestService(t, "", "", 0)

	raw := svc.AuthorizationURL("state-123")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Equal(t, "state-123", query.Get("state"))
	assert.Contains(t, query.Get("scope"), "userinfo.email")
}

func TestOAuthService_ExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "http://localhost:1337/api/sessions/oauth/google", r.PostForm.Get("redirect_uri"))

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   3599,
			"id_token":     "id-456",
		})
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, "", time.Second)

	tokens, err := svc.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "access-123", tokens.AccessToken)
	assert.Equal(t, "id-456", tokens.IDToken)
}

func TestOAuthService_ExchangeCodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "provider rejects code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
			},
		},
		{
			name: "missing id token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"access_token": "access-123", "token_type": "Bearer"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestService(t, server.URL, "", time.Second)

			tokens, err := svc.ExchangeCode(context.Background(), "auth-code")
			assert.Nil(t, tokens)
			assert.ErrorIs(t, err, domainerrors.ErrFederationExchangeFailed)
		})
	}

	t.Run("empty code", func(t *testing.T) {
		svc := newTestService(t, "http://127.0.0.1:0", "", time.Second)

		_, err := svc.ExchangeCode(context.Background(), "")
		assert.ErrorIs(t, err, domainerrors.ErrFederationExchangeFailed)
	})
}

func TestOAuthService_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/v2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer id-456", r.Header.Get("Authorization"))
		assert.Equal(t, "access-123", r.URL.Query().Get("access_token"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id":             "10769150350006150715113082367",
			"email":          "jane.doe@gmail.com",
			"verified_email": true,
			"name":           "Jane Doe",
			"given_name":     "Jane",
			"family_name":    "Doe",
			"picture":        "https://lh3.googleusercontent.com/a/jane",
			"locale":         "en",
		})
	}))
	defer server.Close()

	svc := newTestService(t, "", server.URL+"/", time.Second)

	profile, err := svc.FetchProfile(context.Background(), &service.OAuthTokens{AccessToken: "access-123", IDToken: "id-456"})
	require.NoError(t, err)
	assert.Equal(t, "10769150350006150715113082367", profile.ID)
	assert.Equal(t, "jane.doe@gmail.com", profile.Email)
	assert.True(t, profile.VerifiedEmail)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "Jane", profile.GivenName)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/jane", profile.Picture)
}

func TestOAuthService_FetchProfileUnverified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "1", "email": "jane@example.com", "verified_email": false})
	}))
	defer server.Close()

	svc := newTestService(t, "", server.URL+"/", time.Second)

	profile, err := svc.FetchProfile(context.Background(), &service.OAuthTokens{AccessToken: "a", IDToken: "i"})
	require.NoError(t, err)
	assert.False(t, profile.VerifiedEmail)
}

func TestOAuthService_FetchProfileFailures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"code": 401, "message": "invalid"}})
		}))
		defer server.Close()

		svc := newTestService(t, "", server.URL+"/", time.Second)

		_, err := svc.FetchProfile(context.Background(), &service.OAuthTokens{AccessToken: "a", IDToken: "i"})
		assert.ErrorIs(t, err, domainerrors.ErrFederationProfileFailed)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		svc := newTestService(t, "", server.URL+"/", 50*time.Millisecond)

		_, err := svc.FetchProfile(context.Background(), &service.OAuthTokens{AccessToken: "a", IDToken: "i"})
		assert.ErrorIs(t, err, domainerrors.ErrFederationProfileFailed)
	})

	t.Run("missing id token", func(t *testing.T) {
		svc := newTestService(t, "", "", time.Second)

		_, err := svc.FetchProfile(context.Background(), &service.OAuthTokens{AccessToken: "a"})
		assert.ErrorIs(t, err, domainerrors.ErrFederationProfileFailed)
	})
}
