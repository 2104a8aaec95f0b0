package usecase

import (
	"context"

	"riptide/internal/domain/entity"
)

// RecordHistoryInput defines the data the worker reports for a completed
// detection run.
type RecordHistoryInput struct {
	UserID     string
	ResultPath string
	Status     bool
}

// ListInput defines skip/limit pagination. Skip is a page index; limit is
// clamped to MaxPageSize.
type ListInput struct {
	Skip  int64
	Limit int64
}

// MaxPageSize bounds a single page of list results.
const MaxPageSize = 100

// HistoryUsecase defines detection-history business operations.
type HistoryUsecase interface {
	Record(ctx context.Context, input RecordHistoryInput) (*entity.History, error)
	ListForUsername(ctx context.Context, username string, page ListInput) ([]*entity.History, error)
}
