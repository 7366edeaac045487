// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gatekeeper/config"
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"
	"gatekeeper/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/fx"

	_ "gatekeeper/internal/delivery/http/docs" // Swagger docs
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	SessionHandler *handler.SessionHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	sessionHandler *handler.SessionHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		sessionHandler: params.SessionHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthcheck", handler.HealthCheck)

	if r.cfg.Metrics != nil && r.cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}
	if r.cfg.Docs != nil && r.cfg.Docs.Enabled {
		e.GET("/docs/*", echo.WrapHandler(httpSwagger.Handler(httpSwagger.URL("/docs/doc.json"))))
	}

	api := e.Group("/api", r.authMiddleware.Deserialize)

	sessions := api.Group("/sessions")
	{
		sessions.POST("", r.sessionHandler.CreateSession)
		sessions.GET("", r.sessionHandler.ListSessions, r.authMiddleware.RequireActiveSession)
		// Logout only needs a verified token so that repeating it still succeeds.
		sessions.DELETE("", r.sessionHandler.DeleteSession, r.authMiddleware.RequireUser)
		sessions.GET("/oauth/google", r.sessionHandler.GoogleCallback)
		sessions.GET("/oauth/google/url", r.sessionHandler.GoogleAuthorizationURL)
	}

	users := api.Group("/users")
	{
		users.POST("", r.userHandler.CreateUser)
		users.GET("/me", r.userHandler.GetCurrentUser, r.authMiddleware.RequireActiveSession)
		users.PATCH("/me", r.userHandler.UpdateCurrentUser, r.authMiddleware.RequireActiveSession)
	}
}
