package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gatekeeper/internal/errors"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrInvalidCredentials.WithDetails("unknown email")

	assert.True(t, stderrors.Is(detailed, ErrInvalidCredentials))
	assert.False(t, stderrors.Is(detailed, ErrLoginFailed))
	assert.Equal(t, "unknown email", detailed.Details())
	assert.Equal(t, http.StatusUnauthorized, detailed.HTTPCode())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrUserAlreadyExists.WrapMessage("create user")

	var appErr AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "Account already exists", appErr.Message())
}

func TestDatabaseExecuteError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert session")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.NotContains(t, err.Message(), "connection reset")
}
