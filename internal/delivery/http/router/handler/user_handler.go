package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createUserRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

type updateUserRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1"`
	Picture              *string `json:"picture" validate:"omitempty,url"`
	Password             *string `json:"password" validate:"omitempty,min=6"`
	PasswordConfirmation *string `json:"passwordConfirmation" validate:"required_with=Password,omitempty,eqfield=Password"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateUser godoc
//
//	@Summary	Register an account
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		createUserRequest	true	"New account"
//	@Success	200		{object}	response.User
//	@Failure	400		{object}	domainerrors.ErrorResponse
//	@Failure	409		{string}	string	"Account already exists"
//	@Router		/api/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.FromUser(user))
}

// GetCurrentUser godoc
//
//	@Summary	The authenticated user
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	response.User
//	@Failure	403	{string}	string	"Forbidden"
//	@Router		/api/users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	claims, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	user, err := h.uc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.FromUser(user))
}

// UpdateCurrentUser godoc
//
//	@Summary		Update the authenticated user's profile
//	@Description	Omitted fields are kept. A new password needs a matching passwordConfirmation.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		updateUserRequest	true	"Fields to change"
//	@Success		200		{object}	response.User
//	@Failure		400		{object}	domainerrors.ErrorResponse
//	@Failure		403		{string}	string	"Forbidden"
//	@Router			/api/users/me [patch]
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	claims, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		UserID:   claims.UserID,
		Name:     req.Name,
		Picture:  req.Picture,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.FromUser(user))
}
