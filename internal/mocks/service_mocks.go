package mocks

import (
	"context"
	"image"

	"riptide/internal/domain/entity"
	"riptide/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher mocks service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// TokenService mocks service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) IssueToken(username string) (string, error) {
	args := m.Called(username)

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateToken(tokenString string) (string, error) {
	args := m.Called(tokenString)

	return args.String(0), args.Error(1)
}

// PushService mocks service.PushService.
type PushService struct {
	mock.Mock
}

func (m *PushService) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}

// EventPublisher mocks service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishPushEvent(ctx context.Context, event *service.PushEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// Detector mocks service.Detector.
type Detector struct {
	mock.Mock
}

func (m *Detector) Infer(ctx context.Context, frame image.Image) ([]entity.Detection, error) {
	args := m.Called(ctx, frame)
	if d, ok := args.Get(0).([]entity.Detection); ok {
		return d, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Detector) Close() error {
	args := m.Called()

	return args.Error(0)
}

// DetectorFactory mocks service.DetectorFactory.
type DetectorFactory struct {
	mock.Mock
}

func (m *DetectorFactory) New(ctx context.Context) (service.Detector, error) {
	args := m.Called(ctx)
	if d, ok := args.Get(0).(service.Detector); ok {
		return d, args.Error(1)
	}

	return nil, args.Error(1)
}
