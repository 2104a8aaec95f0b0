package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"riptide/config"
	deliverycontext "riptide/internal/delivery/context"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/infra/storage"
	"riptide/internal/infra/vision"
	"riptide/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	media      *storage.MediaStore
	ffmpegPath string
	logger     *slog.Logger
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Media  *storage.MediaStore
	Config *config.Config
	Logger *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	return &uploadService{
		media:      params.Media,
		ffmpegPath: params.Config.Media.FFmpegPath,
		logger:     params.Logger,
	}
}

func (srv *uploadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Store writes the upload under a timestamp-prefixed name and tries to pull
// the first readable frame as a thumbnail. Thumbnail extraction is attempted
// on every upload regardless of extension; failures are logged and the
// stored file is kept.
func (srv *uploadService) Store(ctx context.Context, filename string, r io.Reader) (*usecase.UploadOutput, error) {
	if filename == "" {
		return nil, domainerrors.ErrFileMissing
	}

	name := timestampName(filename)

	path, err := srv.media.SaveUpload(ctx, name, r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store upload")
	}

	out := &usecase.UploadOutput{FilePath: name}

	thumbName := thumbnailName(name)
	thumbPath := srv.media.ThumbnailPath(thumbName)

	if err := vision.ExtractThumbnail(ctx, srv.ffmpegPath, path, thumbPath); err != nil {
		srv.log(ctx).Warn("Thumbnail extraction failed",
			slog.String("file", name),
			slog.Any("error", err),
		)

		return out, nil
	}

	out.ThumbnailPath = thumbName
	srv.log(ctx).Info("Upload stored",
		slog.String("file", name),
		slog.String("thumbnail", thumbName),
	)

	return out, nil
}

// timestampName prefixes the original filename with the upload time so names
// never collide across uploads of the same file.
func timestampName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")

	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base)
}

// thumbnailName derives the matching thumbnail filename for an upload.
func thumbnailName(name string) string {
	ext := filepath.Ext(name)

	return strings.TrimSuffix(name, ext) + "_thumbnail.jpg"
}
