package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/delivery/http/response"
	"riptide/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HistoryHandler holds dependencies for history handlers.
type HistoryHandler struct {
	uc     usecase.HistoryUsecase
	logger *slog.Logger
}

// NewHistoryHandler is the constructor for HistoryHandler, injected by Fx.
func NewHistoryHandler(uc usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		uc:     uc,
		logger: logger,
	}
}

type recordHistoryRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	ResultPath string `json:"result_path" validate:"required"`
	Status     bool   `json:"status"`
}

// Record persists a detection outcome reported by the worker.
func (h *HistoryHandler) Record(c echo.Context) error {
	var req recordHistoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid history input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	history, err := h.uc.Record(c.Request().Context(), usecase.RecordHistoryInput{
		UserID:     req.UserID,
		ResultPath: req.ResultPath,
		Status:     req.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, history, "History recorded")
}

// List returns a page of the authenticated user's history, newest first.
func (h *HistoryHandler) List(c echo.Context) error {
	histories, err := h.uc.ListForUsername(
		c.Request().Context(),
		deliverycontext.GetUsername(c),
		parsePage(c),
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, histories, "")
}

// parsePage reads skip/limit query parameters. Unparsable values fall back to
// defaults; the usecase layer applies bounds.
func parsePage(c echo.Context) usecase.ListInput {
	var page usecase.ListInput

	if skip, err := strconv.ParseInt(c.QueryParam("skip"), 10, 64); err == nil {
		page.Skip = skip
	}
	if limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil {
		page.Limit = limit
	}

	return page
}
