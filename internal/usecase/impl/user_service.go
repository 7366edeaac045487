// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser hashes the password and stores the new account.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := srv.userRepo.Create(ctx, newUser, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "register user")
		}
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrUserCreationFailed, "create user: %v", err)
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// GetUser loads the current state of an account.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile applies a partial update. Only a supplied password is re-hashed;
// changing the name alone leaves the stored hash as it was.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	patch := &entity.UserPatch{
		Name:    input.Name,
		Picture: input.Picture,
	}

	if input.Password != nil {
		hashedPassword, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		patch.PasswordHash = &hashedPassword
	}

	if patch.IsEmpty() {
		return srv.GetUser(ctx, input.UserID)
	}

	updated, err := srv.userRepo.Update(ctx, input.UserID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "update profile")
		}
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrUserUpdateFailed, "update user: %v", err)
	}

	srv.log(ctx).Info("Profile updated",
		slog.Any("userID", input.UserID),
		slog.Bool("passwordChanged", patch.PasswordHash != nil),
	)

	return updated, nil
}
