package push

import (
	"context"
	"log/slog"

	"riptide/internal/domain/service"
)

// logService is the stand-in push gateway for environments without Firebase
// credentials. Messages are logged, never delivered.
type logService struct {
	logger *slog.Logger
}

// NewLogService creates a push service that only logs.
func NewLogService(logger *slog.Logger) service.PushService {
	return &logService{logger: logger}
}

func (s *logService) Send(_ context.Context, token, title, body string, data map[string]string) error {
	s.logger.Info("[LogPush] Push message",
		slog.String("token", token),
		slog.String("title", title),
		slog.String("body", body),
		slog.Any("data", data),
	)

	return nil
}
