package usecase

import (
	"context"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// DetectionUsecase defines detection-job business operations.
type DetectionUsecase interface {
	// Dispatch records a job for an uploaded source file and starts it in
	// the background. The call returns as soon as the job is persisted;
	// completion and failure are observable only through the job record and
	// the history/notification callbacks. Jobs for the same source are not
	// de-duplicated.
	Dispatch(ctx context.Context, username, source string) (*entity.DetectionJob, error)

	// GetJob returns the persisted state of a job.
	GetJob(ctx context.Context, id uuid.UUID) (*entity.DetectionJob, error)
}
