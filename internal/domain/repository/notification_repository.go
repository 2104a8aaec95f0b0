// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification record.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByUser returns a page of the user's notifications, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*entity.Notification, error)
}
