// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// DetectionRepository defines the interface for detection-job persistence.
// Job state is persisted so outcomes stay observable even when the worker's
// best-effort callbacks are lost.
type DetectionRepository interface {
	// Create persists a new job record in the dispatched state.
	Create(ctx context.Context, job *entity.DetectionJob) error

	// FindByID retrieves a job record. Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DetectionJob, error)

	// UpdateState transitions a job; the error text is stored only for
	// failed jobs.
	UpdateState(ctx context.Context, id uuid.UUID, state entity.JobState, jobErr string) error
}
