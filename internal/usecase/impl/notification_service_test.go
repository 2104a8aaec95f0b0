package impl

import (
	"context"
	"testing"

	"riptide/internal/domain/constants"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/domain/service"
	"riptide/internal/mocks"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestNotificationService(t *testing.T) (
	usecase.NotificationUsecase,
	*mocks.NotificationRepository,
	*mocks.DeviceTokenRepository,
	*mocks.UserRepository,
	*mocks.EventPublisher,
) {
	t.Helper()

	notificationRepo := &mocks.NotificationRepository{}
	tokenRepo := &mocks.DeviceTokenRepository{}
	userRepo := &mocks.UserRepository{}
	publisher := &mocks.EventPublisher{}

	svc := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		TokenRepo:        tokenRepo,
		UserRepo:         userRepo,
		Publisher:        publisher,
		Logger:           testLogger(),
	})

	return svc, notificationRepo, tokenRepo, userRepo, publisher
}

func TestNotificationService_Record_PublishesPushEvent(t *testing.T) {
	svc, notificationRepo, tokenRepo, userRepo, publisher := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(true, nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID && n.DetectionPath == "1700000000.jpg"
	})).Return(nil)

	tokenRepo.On("FindByUserID", ctx, userID).
		Return(&entity.DeviceToken{UserID: userID, DeviceToken: "fcm-token-1"}, nil)

	publisher.On("PublishPushEvent", ctx, mock.MatchedBy(func(e *service.PushEvent) bool {
		return e.DeviceToken == "fcm-token-1" &&
			e.UserID == userID.String() &&
			e.Message == constants.AlertMessage
	})).Return(nil)

	notification, err := svc.Record(ctx, usecase.RecordNotificationInput{
		UserID:        userID.String(),
		DetectionPath: "1700000000.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "1700000000.jpg", notification.DetectionPath)
	publisher.AssertExpectations(t)
}

func TestNotificationService_RecordRegion_UsesRegionMessage(t *testing.T) {
	svc, notificationRepo, tokenRepo, userRepo, publisher := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(true, nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	tokenRepo.On("FindByUserID", ctx, userID).
		Return(&entity.DeviceToken{UserID: userID, DeviceToken: "fcm-token-1"}, nil)

	publisher.On("PublishPushEvent", ctx, mock.MatchedBy(func(e *service.PushEvent) bool {
		return e.Message == constants.RegionAlertMessage
	})).Return(nil)

	_, err := svc.RecordRegion(ctx, usecase.RecordNotificationInput{
		UserID:        userID.String(),
		DetectionPath: "1700000000.jpg",
	})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestNotificationService_Record_UnknownUser(t *testing.T) {
	svc, notificationRepo, _, userRepo, publisher := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(false, nil)

	_, err := svc.Record(ctx, usecase.RecordNotificationInput{
		UserID:        userID.String(),
		DetectionPath: "1700000000.jpg",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishPushEvent", mock.Anything, mock.Anything)
}

func TestNotificationService_Record_NoDeviceToken(t *testing.T) {
	svc, notificationRepo, tokenRepo, userRepo, publisher := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(true, nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	tokenRepo.On("FindByUserID", ctx, userID).Return(nil, repository.ErrNotFound)

	notification, err := svc.Record(ctx, usecase.RecordNotificationInput{
		UserID:        userID.String(),
		DetectionPath: "1700000000.jpg",
	})

	// Record still lands; only the push is skipped.
	require.NoError(t, err)
	assert.NotNil(t, notification)
	publisher.AssertNotCalled(t, "PublishPushEvent", mock.Anything, mock.Anything)
}

func TestNotificationService_Record_PublishFailureIsNonFatal(t *testing.T) {
	svc, notificationRepo, tokenRepo, userRepo, publisher := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(true, nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	tokenRepo.On("FindByUserID", ctx, userID).
		Return(&entity.DeviceToken{UserID: userID, DeviceToken: "fcm-token-1"}, nil)
	publisher.On("PublishPushEvent", ctx, mock.Anything).
		Return(errors.New("broker down"))

	notification, err := svc.Record(ctx, usecase.RecordNotificationInput{
		UserID:        userID.String(),
		DetectionPath: "1700000000.jpg",
	})

	require.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestNotificationService_ListForUsername(t *testing.T) {
	svc, notificationRepo, _, userRepo, _ := createTestNotificationService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

	stored := []*entity.Notification{
		{ID: uuid.New(), UserID: user.ID, DetectionPath: "a.jpg"},
		{ID: uuid.New(), UserID: user.ID, DetectionPath: "b.jpg"},
	}
	notificationRepo.On("FindByUser", ctx, user.ID, repository.Page{Skip: 0, Limit: 10}).
		Return(stored, nil)

	list, err := svc.ListForUsername(ctx, "alice", usecase.ListInput{Skip: 0, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, list, 2)
}
