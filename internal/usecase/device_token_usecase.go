package usecase

import (
	"context"

	"riptide/internal/domain/entity"
)

// RegisterDeviceTokenInput defines the data required to register a push
// token. The endpoint is unauthenticated, so the user id travels in the body.
type RegisterDeviceTokenInput struct {
	UserID      string
	DeviceToken string
}

// DeviceTokenUsecase defines device-token business operations.
type DeviceTokenUsecase interface {
	// Register stores a push token for a user. When one is already
	// registered the call is acknowledged with ErrDeviceTokenExists rather
	// than replaced.
	Register(ctx context.Context, input RegisterDeviceTokenInput) (*entity.DeviceToken, error)

	// GetForUsername returns the token registered for the named user.
	GetForUsername(ctx context.Context, username string) (*entity.DeviceToken, error)
}
