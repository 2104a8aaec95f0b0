package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceTokenService implements the DeviceTokenUsecase interface.
type deviceTokenService struct {
	tokenRepo repository.DeviceTokenRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// DeviceTokenServiceParams holds dependencies for DeviceTokenService, injected by Fx.
type DeviceTokenServiceParams struct {
	fx.In

	TokenRepo repository.DeviceTokenRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewDeviceTokenService is the constructor for deviceTokenService.
func NewDeviceTokenService(params DeviceTokenServiceParams) usecase.DeviceTokenUsecase {
	return &deviceTokenService{
		tokenRepo: params.TokenRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *deviceTokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register stores a push token for a user. Re-registration is acknowledged
// with ErrDeviceTokenExists; the stored token is not replaced. The unique
// user_id index decides the winner under concurrent registrations.
func (srv *deviceTokenService) Register(ctx context.Context, input usecase.RegisterDeviceTokenInput) (*entity.DeviceToken, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("malformed user id")
	}

	now := time.Now()
	token := &entity.DeviceToken{
		ID:          uuid.New(),
		UserID:      userID,
		DeviceToken: input.DeviceToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.tokenRepo.Create(ctx, token); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domainerrors.ErrDeviceTokenExists
		}

		return nil, errors.Wrap(err, "failed to create device token")
	}

	srv.log(ctx).Info("Device token registered", slog.String("user_id", userID.String()))

	return token, nil
}

// GetForUsername resolves the token subject to a user and returns their
// registered device token.
func (srv *deviceTokenService) GetForUsername(ctx context.Context, username string) (*entity.DeviceToken, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	token, err := srv.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrDeviceTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find device token")
	}

	return token, nil
}
