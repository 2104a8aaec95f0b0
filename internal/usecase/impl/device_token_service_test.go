package impl

import (
	"context"
	"net/http"
	"testing"

	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/mocks"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeviceTokenService(t *testing.T) (
	usecase.DeviceTokenUsecase,
	*mocks.DeviceTokenRepository,
	*mocks.UserRepository,
) {
	t.Helper()

	tokenRepo := &mocks.DeviceTokenRepository{}
	userRepo := &mocks.UserRepository{}

	service := NewDeviceTokenService(DeviceTokenServiceParams{
		TokenRepo: tokenRepo,
		UserRepo:  userRepo,
		Logger:    testLogger(),
	})

	return service, tokenRepo, userRepo
}

func TestDeviceTokenService_Register_Success(t *testing.T) {
	service, tokenRepo, _ := createTestDeviceTokenService(t)
	ctx := context.Background()
	userID := uuid.New()

	tokenRepo.On("Create", ctx, mock.MatchedBy(func(tok *entity.DeviceToken) bool {
		return tok.UserID == userID && tok.DeviceToken == "fcm-token-1"
	})).Return(nil)

	token, err := service.Register(ctx, usecase.RegisterDeviceTokenInput{
		UserID:      userID.String(),
		DeviceToken: "fcm-token-1",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, token.UserID)
}

func TestDeviceTokenService_Register_AlreadyExists(t *testing.T) {
	service, tokenRepo, _ := createTestDeviceTokenService(t)
	ctx := context.Background()

	tokenRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := service.Register(ctx, usecase.RegisterDeviceTokenInput{
		UserID:      uuid.New().String(),
		DeviceToken: "fcm-token-1",
	})

	require.ErrorIs(t, err, domainerrors.ErrDeviceTokenExists)

	// Re-registration is an acknowledgement, not a failure.
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusAccepted, appErr.HTTPCode())
}

func TestDeviceTokenService_Register_MalformedUserID(t *testing.T) {
	service, _, _ := createTestDeviceTokenService(t)

	_, err := service.Register(context.Background(), usecase.RegisterDeviceTokenInput{
		UserID:      "not-a-uuid",
		DeviceToken: "fcm-token-1",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestDeviceTokenService_GetForUsername(t *testing.T) {
	service, tokenRepo, userRepo := createTestDeviceTokenService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	stored := &entity.DeviceToken{ID: uuid.New(), UserID: user.ID, DeviceToken: "fcm-token-1"}

	userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	tokenRepo.On("FindByUserID", ctx, user.ID).Return(stored, nil)

	token, err := service.GetForUsername(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, "fcm-token-1", token.DeviceToken)
}

func TestDeviceTokenService_GetForUsername_NoToken(t *testing.T) {
	service, tokenRepo, userRepo := createTestDeviceTokenService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	tokenRepo.On("FindByUserID", ctx, user.ID).Return(nil, repository.ErrNotFound)

	_, err := service.GetForUsername(ctx, "alice")

	require.ErrorIs(t, err, domainerrors.ErrDeviceTokenNotFound)
}
