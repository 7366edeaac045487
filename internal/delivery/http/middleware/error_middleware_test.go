package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatekeeper/internal/delivery/http/validator"
	domainerrors "gatekeeper/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{
			name:       "client error is plain text",
			err:        errors.Wrap(domainerrors.ErrInvalidCredentials, "login"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password",
		},
		{
			name:       "wrapped message keeps the public text",
			err:        domainerrors.ErrUserAlreadyExists.WrapMessage("duplicate key value"),
			wantStatus: http.StatusConflict,
			wantBody:   "Account already exists",
		},
		{
			name:       "server side app error is logged",
			err:        errors.WithStack(domainerrors.ErrUserUpdateFailed),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Unable to update user",
			wantLogged: true,
		},
		{
			name:       "echo error keeps its message",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Not Found",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			m := NewErrorMiddleware(slog.New(slog.NewTextHandler(&logs, nil)))

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantLogged, logs.Len() > 0)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestErrorMiddleware_ValidationErrorIsJSON(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.DiscardHandler))

	type request struct {
		Email string `json:"email" validate:"required,email"`
	}
	err := validator.New().Validate(&request{Email: "nope"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/api/users", nil), rec)

	m.HandleHTTPError(errors.WithStack(err), c)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body domainerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	require.Len(t, body.Error.Fields, 1)
	assert.Equal(t, "email", body.Error.Fields[0].Field)
	assert.Equal(t, "Not a valid email", body.Error.Fields[0].Message)
}

func TestErrorMiddleware_CommittedResponseIsLeftAlone(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	m.HandleHTTPError(domainerrors.ErrForbidden, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
