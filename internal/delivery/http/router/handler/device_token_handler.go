package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/delivery/http/response"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DeviceTokenHandler holds dependencies for device-token handlers.
type DeviceTokenHandler struct {
	uc     usecase.DeviceTokenUsecase
	logger *slog.Logger
}

// NewDeviceTokenHandler is the constructor for DeviceTokenHandler, injected by Fx.
func NewDeviceTokenHandler(uc usecase.DeviceTokenUsecase, logger *slog.Logger) *DeviceTokenHandler {
	return &DeviceTokenHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerDeviceTokenRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	DeviceToken string `json:"device_token" validate:"required"`
}

// Register stores a push token for a user. An already-registered user gets an
// acknowledgement, not an error.
func (h *DeviceTokenHandler) Register(c echo.Context) error {
	var req registerDeviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.uc.Register(c.Request().Context(), usecase.RegisterDeviceTokenInput{
		UserID:      req.UserID,
		DeviceToken: req.DeviceToken,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDeviceTokenExists) {
			return response.Success(c, http.StatusAccepted, nil, "Device token already registered")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, token, "Device token registered")
}

// Get returns the authenticated user's registered device token.
func (h *DeviceTokenHandler) Get(c echo.Context) error {
	token, err := h.uc.GetForUsername(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, token, "")
}
