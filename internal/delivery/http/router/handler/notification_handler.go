package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/delivery/http/response"
	"riptide/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for notification handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

type recordNotificationRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	DetectionPath string `json:"detection_path" validate:"required"`
}

// Record persists a notification and triggers the push flow.
func (h *NotificationHandler) Record(c echo.Context) error {
	var req recordNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notification, err := h.uc.Record(c.Request().Context(), usecase.RecordNotificationInput{
		UserID:        req.UserID,
		DetectionPath: req.DetectionPath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification recorded")
}

// RecordRegion persists a tracked-region notification. The push carries the
// region message instead of the detection one.
func (h *NotificationHandler) RecordRegion(c echo.Context) error {
	var req recordNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notification, err := h.uc.RecordRegion(c.Request().Context(), usecase.RecordNotificationInput{
		UserID:        req.UserID,
		DetectionPath: req.DetectionPath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, notification, "Region notification recorded")
}

// List returns a page of the authenticated user's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.uc.ListForUsername(
		c.Request().Context(),
		deliverycontext.GetUsername(c),
		parsePage(c),
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}
