// Package handler contains the worker's Pub/Sub push handlers.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"riptide/internal/domain/repository"
	"riptide/internal/domain/service"
	"riptide/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pushTitle is the notification title shown on the device.
const pushTitle = "Rip Current Alert"

// PushHandler delivers queued push events to the messaging gateway.
type PushHandler struct {
	logger    *slog.Logger
	pushSvc   service.PushService
	tokenRepo repository.DeviceTokenRepository
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Logger    *slog.Logger
	PushSvc   service.PushService
	TokenRepo repository.DeviceTokenRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		logger:    params.Logger,
		pushSvc:   params.PushSvc,
		tokenRepo: params.TokenRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Malformed messages are
// acknowledged so the subscription never redelivers them; gateway failures
// return 500 so delivery is retried.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	var msg pubsub.PubSubPushMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&msg); err != nil {
		h.logger.Warn("[Worker] Malformed push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		h.logger.Warn("[Worker] Undecodable push payload", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	var event service.PushEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Warn("[Worker] Unparsable push event", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	logger := h.logger.With(
		slog.String("notification_id", event.NotificationID),
		slog.String("user_id", event.UserID),
	)

	payload := map[string]string{
		"notification_id": event.NotificationID,
		"detection_path":  event.DetectionPath,
	}

	err = h.pushSvc.Send(ctx, event.DeviceToken, pushTitle, event.Message, payload)
	if errors.Is(err, service.ErrUnregisteredToken) {
		logger.Info("[Worker] Pruning unregistered device token")
		h.pruneToken(c, event.UserID)

		return c.NoContent(http.StatusOK)
	}
	if err != nil {
		logger.Error("[Worker] Push delivery failed", slog.Any("error", err))

		return c.NoContent(http.StatusInternalServerError)
	}

	logger.Info("[Worker] Push delivered")

	return c.NoContent(http.StatusOK)
}

// pruneToken drops a device token the gateway reported as dead. Best effort;
// a failed delete will simply be retried on the next dead push.
func (h *PushHandler) pruneToken(c echo.Context, userIDStr string) {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return
	}

	if err := h.tokenRepo.DeleteByUserID(c.Request().Context(), userID); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		h.logger.Warn("[Worker] Failed to prune device token",
			slog.String("user_id", userIDStr),
			slog.Any("error", err),
		)
	}
}
