// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/cookie"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type createSessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionHandler serves login, logout and session listing.
type SessionHandler struct {
	uc      usecase.SessionUsecase
	cookies *cookie.Jar
	origin  string
	logger  *slog.Logger
}

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	Usecase usecase.SessionUsecase
	Cookies *cookie.Jar
	Config  *config.Config
	Logger  *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		uc:      params.Usecase,
		cookies: params.Cookies,
		origin:  params.Config.Origin,
		logger:  params.Logger,
	}
}

// CreateSession godoc
//
//	@Summary		Log in with email and password
//	@Description	Opens a session and returns an access and a refresh token, also set as httpOnly cookies.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createSessionRequest	true	"Credentials"
//	@Success		200		{object}	response.Tokens
//	@Failure		400		{object}	domainerrors.ErrorResponse
//	@Failure		401		{string}	string	"Invalid email or password"
//	@Router			/api/sessions [post]
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetTokens(c, output.AccessToken, output.RefreshToken)

	return c.JSON(http.StatusOK, response.NewTokens(output.AccessToken, output.RefreshToken))
}

// ListSessions godoc
//
//	@Summary	List the caller's valid sessions
//	@Tags		Sessions
//	@Produce	json
//	@Success	200	{array}		response.Session
//	@Failure	403	{string}	string	"Forbidden"
//	@Router		/api/sessions [get]
func (h *SessionHandler) ListSessions(c echo.Context) error {
	claims, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	sessions, err := h.uc.ListSessions(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.FromSessions(sessions))
}

// DeleteSession godoc
//
//	@Summary		Log out
//	@Description	Revokes the session of the presented token and clears both cookies. Repeating it is harmless.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	response.Tokens
//	@Failure		403	{string}	string	"Forbidden"
//	@Router			/api/sessions [delete]
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	claims, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
	}); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Clear(c)

	return c.JSON(http.StatusOK, response.Tokens{})
}

// GoogleAuthorizationURL godoc
//
//	@Summary	Google consent page URL
//	@Tags		Sessions
//	@Produce	json
//	@Success	200	{object}	response.AuthorizationURL
//	@Router		/api/sessions/oauth/google/url [get]
func (h *SessionHandler) GoogleAuthorizationURL(c echo.Context) error {
	return c.JSON(http.StatusOK, response.AuthorizationURL{URL: h.uc.GoogleAuthorizationURL("")})
}

// GoogleCallback godoc
//
//	@Summary		Google OAuth callback
//	@Description	Exchanges the authorization code, opens a session and redirects to the web app.
//	@Description	Exchange and profile failures also redirect, without cookies.
//	@Tags			Sessions
//	@Param			code	query		string	true	"Authorization code"
//	@Success		302
//	@Failure		403		{string}	string	"Google account is not verified"
//	@Router			/api/sessions/oauth/google [get]
func (h *SessionHandler) GoogleCallback(c echo.Context) error {
	output, err := h.uc.GoogleLogin(c.Request().Context(), &usecase.GoogleLoginInput{
		Code:      c.QueryParam("code"),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnverifiedFederatedEmail) {
			return errors.WithStack(err)
		}

		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Error("Google login failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, h.origin)
	}

	h.cookies.SetTokens(c, output.AccessToken, output.RefreshToken)

	return c.Redirect(http.StatusFound, h.origin)
}
