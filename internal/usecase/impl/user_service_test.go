package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"
	"riptide/internal/mocks"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func createTestUserService(t *testing.T) (
	usecase.UserUsecase,
	*mocks.UserRepository,
	*mocks.PasswordHasher,
	*mocks.TokenService,
) {
	t.Helper()

	userRepo := &mocks.UserRepository{}
	hasher := &mocks.PasswordHasher{}
	tokenSvc := &mocks.TokenService{}

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       testLogger(),
	})

	return service, userRepo, hasher, tokenSvc
}

func TestUserService_Signup_Success(t *testing.T) {
	service, userRepo, hasher, _ := createTestUserService(t)
	ctx := context.Background()

	hasher.On("Hash", "p1").Return("$2a$hashed", nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice" && u.Password == "$2a$hashed" && u.ID != uuid.Nil
	})).Return(nil)

	out, err := service.Signup(ctx, usecase.SignupInput{
		FullName: "Alice Doe",
		Username: "alice",
		Password: "p1",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", out.User.Username)
	assert.NotEqual(t, "p1", out.User.Password)
	userRepo.AssertExpectations(t)
}

func TestUserService_Signup_DuplicateUsername(t *testing.T) {
	service, userRepo, hasher, _ := createTestUserService(t)
	ctx := context.Background()

	hasher.On("Hash", "p1").Return("$2a$hashed", nil)
	userRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := service.Signup(ctx, usecase.SignupInput{Username: "alice", Password: "p1"})

	require.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_Login_Success(t *testing.T) {
	service, userRepo, hasher, tokenSvc := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice", Password: "$2a$hashed"}
	userRepo.On("FindByUsernameOrNil", ctx, "alice").Return(user, nil)
	hasher.On("Check", "p1", "$2a$hashed").Return(true)
	tokenSvc.On("IssueToken", "alice").Return("signed-token", nil)

	out, err := service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "p1"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, "alice", out.User.Username)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, userRepo, hasher, tokenSvc := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice", Password: "$2a$hashed"}
	userRepo.On("FindByUsernameOrNil", ctx, "alice").Return(user, nil)
	hasher.On("Check", "wrong", "$2a$hashed").Return(false)

	_, err := service.Login(ctx, usecase.LoginInput{Username: "alice", Password: "wrong"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	tokenSvc.AssertNotCalled(t, "IssueToken", mock.Anything)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	service, userRepo, _, _ := createTestUserService(t)
	ctx := context.Background()

	userRepo.On("FindByUsernameOrNil", ctx, "ghost").Return(nil, nil)

	_, err := service.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "p1"})

	// Unknown users and wrong passwords produce the same outcome.
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_GetByUsername_NotFound(t *testing.T) {
	service, userRepo, _, _ := createTestUserService(t)
	ctx := context.Background()

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := service.GetByUsername(ctx, "ghost")

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdatePassword(t *testing.T) {
	service, userRepo, hasher, _ := createTestUserService(t)
	ctx := context.Background()

	hasher.On("Hash", "new-pass").Return("$2a$new", nil)
	userRepo.On("UpdatePassword", ctx, "alice", "$2a$new").Return(nil)

	err := service.UpdatePassword(ctx, usecase.UpdatePasswordInput{
		Username:    "alice",
		NewPassword: "new-pass",
	})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
