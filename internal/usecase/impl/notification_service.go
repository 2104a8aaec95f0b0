package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/domain/constants"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/domain/service"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	tokenRepo        repository.DeviceTokenRepository
	userRepo         repository.UserRepository
	publisher        service.EventPublisher
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	TokenRepo        repository.DeviceTokenRepository
	UserRepo         repository.UserRepository
	Publisher        service.EventPublisher
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		tokenRepo:        params.TokenRepo,
		userRepo:         params.UserRepo,
		publisher:        params.Publisher,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Record persists the notification and publishes a push event for the user's
// registered device. A user without a device token still gets the record;
// only the push is skipped. Publish failures are logged, not propagated: the
// record is the source of truth, the push is best effort.
func (srv *notificationService) Record(ctx context.Context, input usecase.RecordNotificationInput) (*entity.Notification, error) {
	return srv.record(ctx, input, constants.AlertMessage)
}

// RecordRegion is the tracked-region variant of Record: same record, a
// different push message.
func (srv *notificationService) RecordRegion(ctx context.Context, input usecase.RecordNotificationInput) (*entity.Notification, error) {
	return srv.record(ctx, input, constants.RegionAlertMessage)
}

func (srv *notificationService) record(ctx context.Context, input usecase.RecordNotificationInput, message string) (*entity.Notification, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("malformed user id")
	}

	exists, err := srv.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user")
	}
	if !exists {
		return nil, domainerrors.ErrUserNotFound
	}

	now := time.Now()
	notification := &entity.Notification{
		ID:            uuid.New(),
		DetectionPath: input.DetectionPath,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to create notification")
	}

	token, err := srv.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			srv.log(ctx).Info("No device token registered, skipping push",
				slog.String("user_id", userID.String()),
			)

			return notification, nil
		}

		return nil, errors.Wrap(err, "failed to find device token")
	}

	event := &service.PushEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		NotificationID: notification.ID.String(),
		UserID:         userID.String(),
		DeviceToken:    token.DeviceToken,
		DetectionPath:  input.DetectionPath,
		Message:        message,
	}

	if err := srv.publisher.PublishPushEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish push event",
			slog.String("notification_id", notification.ID.String()),
			slog.Any("error", err),
		)

		return notification, nil
	}

	srv.log(ctx).Info("Push event published",
		slog.String("notification_id", notification.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return notification, nil
}

// ListForUsername returns a page of the named user's notifications, newest first.
func (srv *notificationService) ListForUsername(ctx context.Context, username string, page usecase.ListInput) ([]*entity.Notification, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	notifications, err := srv.notificationRepo.FindByUser(ctx, user.ID, clampPage(page))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}
