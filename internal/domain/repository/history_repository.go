// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// HistoryRepository defines the interface for detection-history persistence.
type HistoryRepository interface {
	// Create persists a completed detection outcome.
	Create(ctx context.Context, history *entity.History) error

	// FindByUser returns a page of the user's history records,
	// newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*entity.History, error)
}
