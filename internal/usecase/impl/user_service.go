// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "riptide/internal/delivery/context"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"
	"riptide/internal/domain/service"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a new account. Username uniqueness is enforced by the
// store's unique index, so concurrent signups resolve to exactly one winner.
func (srv *userService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("username", input.Username))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New(),
		FullName:  input.FullName,
		Username:  input.Username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domainerrors.ErrUsernameTaken
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("Signup completed", slog.String("user_id", user.ID.String()))

	return &usecase.SignupOutput{User: user}, nil
}

// Login verifies credentials and issues a bearer token whose subject is the
// username. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsernameOrNil(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.IssueToken(user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Login succeeded", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		AccessToken: token,
		User:        user,
	}, nil
}

// GetByUsername returns the account behind a token subject.
func (srv *userService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdatePassword re-hashes and stores the new password for a username.
func (srv *userService) UpdatePassword(ctx context.Context, input usecase.UpdatePasswordInput) error {
	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	if err := srv.userRepo.UpdatePassword(ctx, input.Username, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password updated", slog.String("username", input.Username))

	return nil
}
