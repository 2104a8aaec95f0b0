package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// historyService implements the HistoryUsecase interface.
type historyService struct {
	historyRepo repository.HistoryRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// HistoryServiceParams holds dependencies for HistoryService, injected by Fx.
type HistoryServiceParams struct {
	fx.In

	HistoryRepo repository.HistoryRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewHistoryService is the constructor for historyService.
func NewHistoryService(params HistoryServiceParams) usecase.HistoryUsecase {
	return &historyService{
		historyRepo: params.HistoryRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *historyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Record persists a completed detection outcome reported by the worker.
func (srv *historyService) Record(ctx context.Context, input usecase.RecordHistoryInput) (*entity.History, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("malformed user id")
	}

	// The record references a user; the check is not atomic with the
	// insert, so it guards against garbage, not races.
	exists, err := srv.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user")
	}
	if !exists {
		return nil, domainerrors.ErrUserNotFound
	}

	now := time.Now()
	history := &entity.History{
		ID:         uuid.New(),
		ResultPath: input.ResultPath,
		UserID:     userID,
		Status:     input.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := srv.historyRepo.Create(ctx, history); err != nil {
		return nil, errors.Wrap(err, "failed to create history")
	}

	srv.log(ctx).Info("History recorded",
		slog.String("user_id", userID.String()),
		slog.Bool("status", input.Status),
	)

	return history, nil
}

// ListForUsername returns a page of the named user's history, newest first.
func (srv *historyService) ListForUsername(ctx context.Context, username string, page usecase.ListInput) ([]*entity.History, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	histories, err := srv.historyRepo.FindByUser(ctx, user.ID, clampPage(page))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list histories")
	}

	return histories, nil
}

// clampPage normalizes pagination input: negative skips reset to the first
// page and the limit is bounded by MaxPageSize.
func clampPage(page usecase.ListInput) repository.Page {
	if page.Skip < 0 {
		page.Skip = 0
	}
	if page.Limit <= 0 || page.Limit > usecase.MaxPageSize {
		page.Limit = usecase.MaxPageSize
	}

	return repository.Page{Skip: page.Skip, Limit: page.Limit}
}
