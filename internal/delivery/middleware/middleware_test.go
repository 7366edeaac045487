package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generated when missing"},
		{name: "caller id is reused", incoming: "req-123", wantSame: true},
		{name: "oversized id is replaced", incoming: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			m := NewRequestIDMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			var fromCtx string
			err := m.Process(func(c echo.Context) error {
				ctx := c.Request().Context()
				fromCtx = deliverycontext.GetRequestIDFromContext(ctx)
				deliverycontext.GetLoggerOrDefault(ctx, nil).InfoContext(ctx, "inside")

				return nil
			})(c)
			require.NoError(t, err)

			id := rec.Header().Get(deliverycontext.HeaderXRequestID)
			require.NotEmpty(t, id)
			assert.Equal(t, id, fromCtx)
			assert.Equal(t, id, deliverycontext.GetRequestID(c))
			assert.LessOrEqual(t, len(id), maxRequestIDLength)
			assert.Equal(t, tt.wantSame, id == tt.incoming)
			assert.Contains(t, logs.String(), `"request_id":"`+id+`"`)
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	var logs bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true
	m := NewLoggerMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)), cfg)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me?x=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/users/me")

	err := m.Handle(func(echo.Context) error {
		return echo.ErrForbidden
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	out := logs.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status":403`)
	assert.Contains(t, out, `"route":"/api/users/me"`)
	assert.Contains(t, out, `"query":"x=1"`)
}

func TestMetricsMiddleware_Handle(t *testing.T) {
	m := metrics.New()
	mw := NewMetricsMiddleware(m)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/sessions", nil), rec)
	c.SetPath("/api/sessions")
	err := mw.Handle(func(c echo.Context) error {
		return echo.ErrUnauthorized
	})(c)
	require.ErrorIs(t, err, echo.ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unrouted requests are not recorded.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/nowhere", nil), httptest.NewRecorder())
	require.NoError(t, mw.Handle(func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})(c))

	count, err := testutil.GatherAndCount(m.Registry(), "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `status_code="401"`)
}

func TestLoggerMiddleware_SeesErrorsRenderedByMetrics(t *testing.T) {
	var logs bytes.Buffer
	logger := NewLoggerMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)), &config.Config{})
	mw := NewMetricsMiddleware(metrics.New())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/sessions/current", nil), rec)
	c.SetPath("/api/sessions/current")

	err := logger.Handle(mw.Handle(func(echo.Context) error {
		return echo.ErrForbidden
	}))(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "Forbidden"))
	out := logs.String()
	assert.Contains(t, out, `"status":403`)
	assert.Contains(t, out, `"error":"code=403, message=Forbidden"`)
}
