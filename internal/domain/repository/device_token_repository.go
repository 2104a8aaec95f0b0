// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceTokenRepository defines the interface for device-token persistence.
type DeviceTokenRepository interface {
	// Create persists a new device token. Returns ErrDuplicate when a token
	// already exists for the user (unique index on user_id).
	Create(ctx context.Context, token *entity.DeviceToken) error

	// FindByUserID retrieves the token registered for a user.
	// Returns ErrNotFound when absent.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DeviceToken, error)

	// DeleteByUserID removes the token registered for a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
