package impl

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // frame decoders for stored uploads
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"riptide/config"
	deliverycontext "riptide/internal/delivery/context"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/domain/service"
	"riptide/internal/infra/callback"
	"riptide/internal/infra/storage"
	"riptide/internal/infra/vision"
	"riptide/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// imageExtensions are treated as still images; anything else goes down the
// video path, matching the upload handler's decode-anything behavior.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// detectionService implements the DetectionUsecase interface. Jobs run as
// fire-and-forget goroutines: no queue, no retry, no cancellation. Two jobs
// for the same source run independently.
type detectionService struct {
	detectionRepo repository.DetectionRepository
	userRepo      repository.UserRepository
	media         *storage.MediaStore
	factory       service.DetectorFactory
	callbacks     *callback.Client
	alertLabel    string
	ffmpegPath    string
	logger        *slog.Logger
}

// DetectionServiceParams holds dependencies for DetectionService, injected by Fx.
type DetectionServiceParams struct {
	fx.In

	DetectionRepo repository.DetectionRepository
	UserRepo      repository.UserRepository
	Media         *storage.MediaStore
	Factory       service.DetectorFactory
	Callbacks     *callback.Client
	Config        *config.Config
	Logger        *slog.Logger
}

// NewDetectionService is the constructor for detectionService.
func NewDetectionService(params DetectionServiceParams) usecase.DetectionUsecase {
	return &detectionService{
		detectionRepo: params.DetectionRepo,
		userRepo:      params.UserRepo,
		media:         params.Media,
		factory:       params.Factory,
		callbacks:     params.Callbacks,
		alertLabel:    params.Config.Detection.AlertLabel,
		ffmpegPath:    params.Config.Media.FFmpegPath,
		logger:        params.Logger,
	}
}

func (srv *detectionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dispatch persists a job record and starts it in the background. The caller
// gets an acknowledgement as soon as the record exists; the job itself is
// detached from the request and cannot be cancelled.
func (srv *detectionService) Dispatch(ctx context.Context, username, source string) (*entity.DetectionJob, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	ok, err := srv.media.UploadExists(ctx, source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat upload")
	}
	if !ok {
		return nil, domainerrors.ErrFileMissing
	}

	now := time.Now()
	job := &entity.DetectionJob{
		ID:        uuid.New(),
		Source:    source,
		State:     entity.JobDispatched,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.detectionRepo.Create(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to create detection job")
	}

	srv.log(ctx).Info("Detection job dispatched",
		slog.String("job_id", job.ID.String()),
		slog.String("source", source),
	)

	go srv.runJob(job.ID, user.ID, source)

	return job, nil
}

// GetJob returns the persisted state of a job.
func (srv *detectionService) GetJob(ctx context.Context, id uuid.UUID) (*entity.DetectionJob, error) {
	job, err := srv.detectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find detection job")
	}

	return job, nil
}

// runJob executes one detection job to completion. It runs detached from the
// originating request, so failures are logged and persisted on the job
// record, never surfaced to a caller.
func (srv *detectionService) runJob(jobID, userID uuid.UUID, source string) {
	ctx := context.Background()
	logger := srv.logger.With(
		slog.String("job_id", jobID.String()),
		slog.String("source", source),
	)

	if err := srv.detectionRepo.UpdateState(ctx, jobID, entity.JobRunning, ""); err != nil {
		logger.Error("Failed to mark job running", slog.Any("error", err))

		return
	}

	var err error
	if imageExtensions[strings.ToLower(filepath.Ext(source))] {
		err = srv.runImageJob(ctx, logger, userID, source)
	} else {
		err = srv.runVideoJob(ctx, logger, source)
	}

	if err != nil {
		logger.Error("Detection job failed", slog.Any("error", err))

		if uerr := srv.detectionRepo.UpdateState(ctx, jobID, entity.JobFailed, err.Error()); uerr != nil {
			logger.Error("Failed to mark job failed", slog.Any("error", uerr))
		}

		return
	}

	if err := srv.detectionRepo.UpdateState(ctx, jobID, entity.JobCompleted, ""); err != nil {
		logger.Error("Failed to mark job completed", slog.Any("error", err))

		return
	}

	logger.Info("Detection job completed")
}

// runImageJob loads the model cold, infers over the single frame, writes the
// annotated result and reports it through the API's own endpoints.
func (srv *detectionService) runImageJob(ctx context.Context, logger *slog.Logger, userID uuid.UUID, source string) error {
	rd, err := srv.media.OpenUpload(ctx, source)
	if err != nil {
		return errors.Wrap(err, "open source")
	}

	frame, _, err := image.Decode(rd)
	rd.Close()
	if err != nil {
		return errors.Wrap(err, "decode source image")
	}

	detector, err := srv.factory.New(ctx)
	if err != nil {
		return errors.Wrap(err, "construct detector")
	}
	defer detector.Close()

	detections, err := detector.Infer(ctx, frame)
	if err != nil {
		return errors.Wrap(err, "run inference")
	}

	annotated := vision.Annotate(frame, detections)

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, annotated, nil); err != nil {
		return errors.Wrap(err, "encode annotated frame")
	}

	resultName := resultName(time.Now())
	if _, err := srv.media.SaveDetection(ctx, resultName, buf); err != nil {
		return errors.Wrap(err, "save annotated frame")
	}

	status := len(detections) > 0
	historyReq := &callback.HistoryRequest{
		UserID:     userID.String(),
		ResultPath: resultName,
		Status:     status,
	}
	if err := srv.callbacks.ReportHistory(ctx, historyReq); err != nil {
		return errors.Wrap(err, "report history")
	}

	logger.Info("Inference finished",
		slog.Int("detections", len(detections)),
		slog.Bool("status", status),
	)

	if !srv.hasAlertDetection(detections) {
		return nil
	}

	notificationReq := &callback.NotificationRequest{
		UserID:        userID.String(),
		DetectionPath: resultName,
	}
	if err := srv.callbacks.ReportNotification(ctx, notificationReq); err != nil {
		return errors.Wrap(err, "report notification")
	}

	return nil
}

// runVideoJob infers frame by frame and logs what it sees. Video results are
// neither persisted nor reported; only the job record shows the run happened.
func (srv *detectionService) runVideoJob(ctx context.Context, logger *slog.Logger, source string) error {
	detector, err := srv.factory.New(ctx)
	if err != nil {
		return errors.Wrap(err, "construct detector")
	}
	defer detector.Close()

	frameIndex := 0
	err = vision.Frames(ctx, srv.ffmpegPath, srv.media.UploadPath(source), func(frame image.Image) error {
		detections, err := detector.Infer(ctx, frame)
		if err != nil {
			return errors.Wrapf(err, "infer frame %d", frameIndex)
		}

		if len(detections) > 0 {
			logger.Info("Frame detections",
				slog.Int("frame", frameIndex),
				slog.Int("count", len(detections)),
			)
		}
		frameIndex++

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "iterate video frames")
	}

	logger.Info("Video scan finished", slog.Int("frames", frameIndex))

	return nil
}

func (srv *detectionService) hasAlertDetection(detections []entity.Detection) bool {
	for _, det := range detections {
		if det.Label == srv.alertLabel {
			return true
		}
	}

	return false
}

// resultName generates the annotated output filename from the completion
// time rather than the source name, so rerunning a source yields a fresh
// result file for each history record.
func resultName(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10) + ".jpg"
}
