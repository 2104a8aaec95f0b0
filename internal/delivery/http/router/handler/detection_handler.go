package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/delivery/http/response"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DetectionHandler holds dependencies for detection-job handlers.
type DetectionHandler struct {
	uc     usecase.DetectionUsecase
	logger *slog.Logger
}

// NewDetectionHandler is the constructor for DetectionHandler, injected by Fx.
func NewDetectionHandler(uc usecase.DetectionUsecase, logger *slog.Logger) *DetectionHandler {
	return &DetectionHandler{
		uc:     uc,
		logger: logger,
	}
}

type dispatchRequest struct {
	Source string `json:"source" validate:"required"`
}

// Dispatch creates a job record and starts the detection in the background.
// The response is an acknowledgement only; job completion is observable
// through the job record and the history/notification endpoints.
func (h *DetectionHandler) Dispatch(c echo.Context) error {
	var req dispatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid detection input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.uc.Dispatch(c.Request().Context(), deliverycontext.GetUsername(c), req.Source)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, job, "Detection job dispatched")
}

// GetJob returns the persisted state of a job.
func (h *DetectionHandler) GetJob(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrJobNotFound
	}

	job, err := h.uc.GetJob(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, job, "")
}
