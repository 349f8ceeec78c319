// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"authd/config"
	deliverycontext "authd/internal/delivery/context"
	"authd/internal/domain/entity"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/domain/repository"
	"authd/internal/domain/service"
	"authd/internal/errors"
	"authd/internal/usecase"

	"go.uber.org/fx"
)

// emailField is the account column guarded by the unique email constraint.
const emailField = "email"

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	storeTimeout time.Duration
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	var storeTimeout time.Duration
	if params.Config != nil && params.Config.Auth != nil {
		storeTimeout = params.Config.Auth.StoreTimeout
	}

	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		storeTimeout: storeTimeout,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// storeContext bounds a single account store call.
func (srv *authService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if srv.storeTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, srv.storeTimeout)
}

// Signup hashes the password and stores a new account.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Debug("Starting signup", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: hash,
	}

	storeCtx, cancel := srv.storeContext(ctx)
	defer cancel()

	if err := srv.accountRepo.Create(storeCtx, account); err != nil {
		var uniqueErr *repository.UniqueViolationError
		if errors.As(err, &uniqueErr) && uniqueErr.Field == emailField {
			srv.log(ctx).Warn("Signup rejected", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrEmailTaken))

			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "signup failed")
		}

		srv.log(ctx).Error("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", account.ID))

	return &usecase.SignupOutput{Account: account.Public()}, nil
}

// Signin verifies the password against the stored hash.
// An unknown email and a wrong password fail with the same error.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.SigninOutput, error) {
	srv.log(ctx).Debug("Starting signin", slog.String("email", input.Email))

	account, err := srv.findAccount(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Signin failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "signin failed")
		}

		srv.log(ctx).Error("Failed to load account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account")
	}

	match, err := srv.hasher.Check(ctx, input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Failed to verify password", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !match {
		srv.log(ctx).Warn("Signin failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "signin failed")
	}

	srv.log(ctx).Debug("Signin completed", slog.Any("accountID", account.ID))

	return &usecase.SigninOutput{Account: account.Public()}, nil
}

func (srv *authService) findAccount(ctx context.Context, email string) (*entity.Account, error) {
	storeCtx, cancel := srv.storeContext(ctx)
	defer cancel()

	return srv.accountRepo.FindByEmail(storeCtx, email)
}
