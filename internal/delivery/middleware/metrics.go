package middleware

import (
	"time"

	"gatekeeper/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records the duration of every request that matched a route.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle renders handler errors itself so the recorded status is the one sent.
// The error is still returned so outer middleware can log it.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		if route := c.Path(); route != "" {
			m.metrics.ObserveRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
		}

		return err
	}
}
