package usecase

import (
	"context"

	"riptide/internal/domain/entity"
)

// RecordNotificationInput defines the data the worker reports when the alert
// class was detected.
type RecordNotificationInput struct {
	UserID        string
	DetectionPath string
}

// NotificationUsecase defines notification business operations.
type NotificationUsecase interface {
	// Record persists the notification and publishes a push event for the
	// user's registered device. A missing device token skips the push but
	// still records the notification.
	Record(ctx context.Context, input RecordNotificationInput) (*entity.Notification, error)

	// RecordRegion records a tracked-region event. Identical to Record
	// except for the push message body.
	RecordRegion(ctx context.Context, input RecordNotificationInput) (*entity.Notification, error)

	ListForUsername(ctx context.Context, username string, page ListInput) ([]*entity.Notification, error)
}
