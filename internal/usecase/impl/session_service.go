package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login checks the password and opens a new session.
// Unknown email and wrong password fail the same way, before any session exists.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	credentials, err := srv.userRepo.FindCredentialsByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
		srv.log(ctx).Error("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrLoginFailed, "load credentials: %v", err)
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !credentials.HasPassword() || !srv.hasher.Check(input.Password, credentials.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	session, err := srv.sessionRepo.Create(ctx, credentials.User.ID, input.UserAgent)
	if err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Any("userID", credentials.User.ID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrLoginFailed, "create session: %v", err)
	}

	output, err := srv.issueTokens(credentials.User, session)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("sessionID", session.ID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrLoginFailed, "%v", err)
	}

	srv.publish(ctx, service.SessionCreated, session, service.ProviderPassword)
	srv.log(ctx).Info("User logged in", slog.Any("userID", credentials.User.ID), slog.Any("sessionID", session.ID))

	return output, nil
}

// GoogleLogin completes the authorization-code flow. The account is created or
// refreshed from the Google profile and the session opened in one transaction.
func (srv *sessionService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling Google callback")

	tokens, err := srv.oauthService.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange Google authorization code")
	}

	profile, err := srv.oauthService.FetchProfile(ctx, tokens)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch Google profile")
	}

	if !profile.VerifiedEmail {
		srv.log(ctx).Warn("Google account email not verified", slog.String("email", profile.Email))

		return nil, errors.Wrap(domainerrors.ErrUnverifiedFederatedEmail, "google login")
	}

	var (
		user    *entity.User
		session *entity.Session
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error

		user, txErr = repoFactory.NewUserRepository().UpsertByEmail(ctx, &entity.User{
			Email:   profile.Email,
			Name:    profile.Name,
			Picture: profile.Picture,
		})
		if txErr != nil {
			return errors.Wrap(txErr, "failed to upsert Google user")
		}

		session, txErr = repoFactory.NewSessionRepository().Create(ctx, user.ID, input.UserAgent)
		if txErr != nil {
			return errors.Wrap(txErr, "failed to create session")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist Google login", slog.String("email", profile.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute Google login transaction")
	}

	output, err := srv.issueTokens(user, session)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("sessionID", session.ID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrLoginFailed, "%v", err)
	}

	srv.publish(ctx, service.SessionCreated, session, service.ProviderGoogle)
	srv.log(ctx).Info("User logged in with Google", slog.Any("userID", user.ID), slog.Any("sessionID", session.ID))

	return output, nil
}

// GoogleAuthorizationURL returns the consent page the browser is sent to.
func (srv *sessionService) GoogleAuthorizationURL(state string) string {
	return srv.oauthService.AuthorizationURL(state)
}

// ListSessions returns the user's valid sessions, newest first.
func (srv *sessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	srv.log(ctx).Debug("Getting active sessions", slog.Any("user_id", userID))

	sessions, err := srv.sessionRepo.Find(ctx, entity.SessionFilter{
		UserID: userID,
		Valid:  entity.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sessions")
	}

	return sessions, nil
}

// Logout marks the session invalid. A second call finds nothing to change and still succeeds.
func (srv *sessionService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out", slog.Any("sessionID", input.SessionID))

	changed, err := srv.sessionRepo.Update(ctx, input.SessionID, entity.SessionPatch{Valid: entity.Bool(false)})
	if err != nil {
		srv.log(ctx).Error("Failed to invalidate session", slog.Any("sessionID", input.SessionID), slog.Any("error", err))

		return errors.Wrap(err, "failed to invalidate session")
	}

	if !changed {
		srv.log(ctx).Debug("Session already invalid", slog.Any("sessionID", input.SessionID))

		return nil
	}

	// Revoked events carry the device of the session; the login provider is not stored.
	revoked, err := srv.sessionRepo.FindByID(ctx, input.SessionID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load revoked session", slog.Any("sessionID", input.SessionID), slog.Any("error", err))
		revoked = &entity.Session{ID: input.SessionID, UserID: input.UserID}
	}
	srv.publish(ctx, service.SessionRevoked, revoked, "")
	srv.log(ctx).Info("Successfully logged out", slog.Any("sessionID", input.SessionID))

	return nil
}

// RefreshAccessToken re-issues an access token from a refresh token. The user
// view is reloaded so the new token reflects the current profile.
func (srv *sessionService) RefreshAccessToken(ctx context.Context, refreshToken string) (*usecase.RefreshAccessTokenOutput, error) {
	claims, err := srv.tokenService.Verify(refreshToken, service.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	session, err := srv.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "refresh access token")
		}

		return nil, errors.Wrap(err, "failed to find session")
	}
	if !session.Valid {
		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "refresh access token")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "session user is gone")
		}

		return nil, errors.Wrap(err, "failed to find session user")
	}

	accessToken, err := srv.tokenService.Sign(&service.TokenPayload{
		User:      user,
		SessionID: session.ID,
	}, service.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	srv.log(ctx).Debug("Access token re-issued", slog.Any("sessionID", session.ID))

	return &usecase.RefreshAccessTokenOutput{
		AccessToken: accessToken,
		User:        user,
		Session:     session,
	}, nil
}

// EnsureActiveSession rejects tokens whose session was revoked or belongs to someone else.
func (srv *sessionService) EnsureActiveSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := srv.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return errors.Wrap(domainerrors.ErrSessionInvalid, "session not found")
		}

		return errors.Wrap(err, "failed to find session")
	}

	if !session.Valid || session.UserID != userID {
		return errors.Wrap(domainerrors.ErrSessionInvalid, "session not active")
	}

	return nil
}

func (srv *sessionService) issueTokens(user *entity.User, session *entity.Session) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(&service.TokenPayload{
		User:      user,
		SessionID: session.ID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
		Session:      session,
	}, nil
}

// publish sends a session event. Failures are logged and never reach the caller.
func (srv *sessionService) publish(ctx context.Context, eventType service.SessionEventType, session *entity.Session, provider string) {
	event := &service.SessionEvent{
		Type:       eventType,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		UserID:     session.UserID.String(),
		SessionID:  session.ID.String(),
		UserAgent:  session.UserAgent,
		Provider:   provider,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishSessionEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish session event",
			slog.String("type", string(eventType)),
			slog.Any("sessionID", session.ID),
			slog.Any("error", err),
		)
	}
}
