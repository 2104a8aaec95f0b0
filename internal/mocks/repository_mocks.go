// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"riptide/internal/domain/entity"
	"riptide/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository mocks repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByUsernameOrNil(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)

	return args.Error(0)
}

// DeviceTokenRepository mocks repository.DeviceTokenRepository.
type DeviceTokenRepository struct {
	mock.Mock
}

func (m *DeviceTokenRepository) Create(ctx context.Context, token *entity.DeviceToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *DeviceTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DeviceToken, error) {
	args := m.Called(ctx, userID)
	if t, ok := args.Get(0).(*entity.DeviceToken); ok {
		return t, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DeviceTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

// HistoryRepository mocks repository.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) Create(ctx context.Context, history *entity.History) error {
	args := m.Called(ctx, history)

	return args.Error(0)
}

func (m *HistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, page repository.Page) ([]*entity.History, error) {
	args := m.Called(ctx, userID, page)
	if h, ok := args.Get(0).([]*entity.History); ok {
		return h, args.Error(1)
	}

	return nil, args.Error(1)
}

// NotificationRepository mocks repository.NotificationRepository.
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *NotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, page repository.Page) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, page)
	if n, ok := args.Get(0).([]*entity.Notification); ok {
		return n, args.Error(1)
	}

	return nil, args.Error(1)
}

// DetectionRepository mocks repository.DetectionRepository.
type DetectionRepository struct {
	mock.Mock
}

func (m *DetectionRepository) Create(ctx context.Context, job *entity.DetectionJob) error {
	args := m.Called(ctx, job)

	return args.Error(0)
}

func (m *DetectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DetectionJob, error) {
	args := m.Called(ctx, id)
	if j, ok := args.Get(0).(*entity.DetectionJob); ok {
		return j, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DetectionRepository) UpdateState(ctx context.Context, id uuid.UUID, state entity.JobState, jobErr string) error {
	args := m.Called(ctx, id, state, jobErr)

	return args.Error(0)
}
