package handler

import (
	"log/slog"
	"net/http"

	"riptide/internal/delivery/http/response"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadHandler holds dependencies for media-upload handlers.
type UploadHandler struct {
	uc     usecase.UploadUsecase
	logger *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(uc usecase.UploadUsecase, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uc:     uc,
		logger: logger,
	}
}

type uploadResponse struct {
	FilePath      string `json:"file_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// Upload stores a multipart file and derives a thumbnail when possible.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domainerrors.ErrFileMissing
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open multipart file")
	}
	defer src.Close()

	out, err := h.uc.Store(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, uploadResponse{
		FilePath:      out.FilePath,
		ThumbnailPath: out.ThumbnailPath,
	}, "File uploaded")
}
