package impl

import (
	"context"
	"testing"

	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/mocks"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestHistoryService(t *testing.T) (
	usecase.HistoryUsecase,
	*mocks.HistoryRepository,
	*mocks.UserRepository,
) {
	t.Helper()

	historyRepo := &mocks.HistoryRepository{}
	userRepo := &mocks.UserRepository{}

	service := NewHistoryService(HistoryServiceParams{
		HistoryRepo: historyRepo,
		UserRepo:    userRepo,
		Logger:      testLogger(),
	})

	return service, historyRepo, userRepo
}

func TestHistoryService_Record(t *testing.T) {
	service, historyRepo, userRepo := createTestHistoryService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(true, nil)
	historyRepo.On("Create", ctx, mock.MatchedBy(func(h *entity.History) bool {
		return h.UserID == userID && h.ResultPath == "1700000000.jpg" && h.Status
	})).Return(nil)

	history, err := service.Record(ctx, usecase.RecordHistoryInput{
		UserID:     userID.String(),
		ResultPath: "1700000000.jpg",
		Status:     true,
	})

	require.NoError(t, err)
	assert.True(t, history.Status)
	historyRepo.AssertExpectations(t)
}

func TestHistoryService_Record_UnknownUser(t *testing.T) {
	service, historyRepo, userRepo := createTestHistoryService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("ExistsByID", ctx, userID).Return(false, nil)

	_, err := service.Record(ctx, usecase.RecordHistoryInput{
		UserID:     userID.String(),
		ResultPath: "1700000000.jpg",
		Status:     true,
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	historyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHistoryService_Record_MalformedUserID(t *testing.T) {
	service, _, _ := createTestHistoryService(t)

	_, err := service.Record(context.Background(), usecase.RecordHistoryInput{
		UserID: "nope",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestHistoryService_ListForUsername_ClampsLimit(t *testing.T) {
	service, historyRepo, userRepo := createTestHistoryService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

	historyRepo.On("FindByUser", ctx, user.ID, repository.Page{Skip: 2, Limit: usecase.MaxPageSize}).
		Return([]*entity.History{}, nil)

	_, err := service.ListForUsername(ctx, "alice", usecase.ListInput{Skip: 2, Limit: 500})

	require.NoError(t, err)
	historyRepo.AssertExpectations(t)
}

func TestHistoryService_ListForUsername_DefaultsAndOffsets(t *testing.T) {
	service, historyRepo, userRepo := createTestHistoryService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

	page := repository.Page{Skip: 1, Limit: 10}
	historyRepo.On("FindByUser", ctx, user.ID, page).Return([]*entity.History{}, nil)

	_, err := service.ListForUsername(ctx, "alice", usecase.ListInput{Skip: 1, Limit: 10})

	require.NoError(t, err)
	// Skip is a page index: skip=1,limit=10 starts at the 11th record.
	assert.Equal(t, int64(10), page.Offset())
}

func TestHistoryService_ListForUsername_UnknownUser(t *testing.T) {
	service, _, userRepo := createTestHistoryService(t)
	ctx := context.Background()

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := service.ListForUsername(ctx, "ghost", usecase.ListInput{})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
