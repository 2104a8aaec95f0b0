package impl

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"riptide/config"
	"riptide/internal/domain/entity"
	domainerrors "riptide/internal/domain/errors"
	"riptide/internal/domain/repository"
	"riptide/internal/infra/callback"
	"riptide/internal/infra/storage"
	"riptide/internal/mocks"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// callbackRecorder captures the worker's history/notification callbacks.
type callbackRecorder struct {
	mu            sync.Mutex
	histories     []callback.HistoryRequest
	notifications []callback.NotificationRequest
}

func (r *callbackRecorder) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/history/", func(w http.ResponseWriter, req *http.Request) {
		var body callback.HistoryRequest
		_ = json.NewDecoder(req.Body).Decode(&body)

		r.mu.Lock()
		r.histories = append(r.histories, body)
		r.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/api/notification/", func(w http.ResponseWriter, req *http.Request) {
		var body callback.NotificationRequest
		_ = json.NewDecoder(req.Body).Decode(&body)

		r.mu.Lock()
		r.notifications = append(r.notifications, body)
		r.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	})

	return mux
}

type detectionFixture struct {
	service       *detectionService
	detectionRepo *mocks.DetectionRepository
	userRepo      *mocks.UserRepository
	factory       *mocks.DetectorFactory
	media         *storage.MediaStore
	recorder      *callbackRecorder
}

func createTestDetectionService(t *testing.T) *detectionFixture {
	t.Helper()

	root := t.TempDir()
	media, err := storage.OpenMediaStore(config.MediaConfig{
		PublicDir:    filepath.Join(root, "public"),
		DetectionDir: filepath.Join(root, "detection"),
		ThumbnailDir: filepath.Join(root, "thumbnail"),
		FFmpegPath:   "ffmpeg",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = media.Close() })

	recorder := &callbackRecorder{}
	server := httptest.NewServer(recorder.handler())
	t.Cleanup(server.Close)

	host, portStr, err := net.SplitHostPort(server.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	detectionRepo := &mocks.DetectionRepository{}
	userRepo := &mocks.UserRepository{}
	factory := &mocks.DetectorFactory{}

	svc := NewDetectionService(DetectionServiceParams{
		DetectionRepo: detectionRepo,
		UserRepo:      userRepo,
		Media:         media,
		Factory:       factory,
		Callbacks:     callback.NewClient(host, port, testLogger()),
		Config: &config.Config{
			Detection: config.DetectionConfig{AlertLabel: "rip"},
			Media:     config.MediaConfig{FFmpegPath: "ffmpeg"},
		},
		Logger: testLogger(),
	}).(*detectionService)

	return &detectionFixture{
		service:       svc,
		detectionRepo: detectionRepo,
		userRepo:      userRepo,
		factory:       factory,
		media:         media,
		recorder:      recorder,
	}
}

func storeTestImage(t *testing.T, media *storage.MediaStore, name string) {
	t.Helper()

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))

	_, err := media.SaveUpload(context.Background(), name, buf)
	require.NoError(t, err)
}

func TestDetectionService_ImageJob_NoDetections(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()
	userID := uuid.New()

	storeTestImage(t, f.media, "beach.png")

	detector := &mocks.Detector{}
	detector.On("Infer", mock.Anything, mock.Anything).Return([]entity.Detection{}, nil)
	detector.On("Close").Return(nil)
	f.factory.On("New", mock.Anything).Return(detector, nil)

	err := f.service.runImageJob(ctx, testLogger(), userID, "beach.png")
	require.NoError(t, err)

	// status=false history, no notification.
	require.Len(t, f.recorder.histories, 1)
	assert.False(t, f.recorder.histories[0].Status)
	assert.Equal(t, userID.String(), f.recorder.histories[0].UserID)
	assert.Empty(t, f.recorder.notifications)

	// The result lands under a generated timestamp name, not the source name.
	resultPath := f.recorder.histories[0].ResultPath
	assert.Regexp(t, `^\d+\.jpg$`, resultPath)
	assert.FileExists(t, filepath.Join(f.media.DetectionDir(), resultPath))
}

func TestDetectionService_ImageJob_AlertDetection(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()
	userID := uuid.New()

	storeTestImage(t, f.media, "beach.png")

	detections := []entity.Detection{
		{Label: "rip", Confidence: 0.9, Box: entity.Box{X: 2, Y: 2, Width: 10, Height: 10}},
	}
	detector := &mocks.Detector{}
	detector.On("Infer", mock.Anything, mock.Anything).Return(detections, nil)
	detector.On("Close").Return(nil)
	f.factory.On("New", mock.Anything).Return(detector, nil)

	err := f.service.runImageJob(ctx, testLogger(), userID, "beach.png")
	require.NoError(t, err)

	// status=true history and exactly one notification callback, both
	// pointing at the same generated result file.
	require.Len(t, f.recorder.histories, 1)
	assert.True(t, f.recorder.histories[0].Status)
	require.Len(t, f.recorder.notifications, 1)
	assert.Equal(t, f.recorder.histories[0].ResultPath, f.recorder.notifications[0].DetectionPath)
	assert.Regexp(t, `^\d+\.jpg$`, f.recorder.notifications[0].DetectionPath)
}

func TestDetectionService_ImageJob_NonAlertDetection(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()
	userID := uuid.New()

	storeTestImage(t, f.media, "beach.png")

	detections := []entity.Detection{
		{Label: "person", Confidence: 0.8, Box: entity.Box{X: 1, Y: 1, Width: 5, Height: 5}},
	}
	detector := &mocks.Detector{}
	detector.On("Infer", mock.Anything, mock.Anything).Return(detections, nil)
	detector.On("Close").Return(nil)
	f.factory.On("New", mock.Anything).Return(detector, nil)

	err := f.service.runImageJob(ctx, testLogger(), userID, "beach.png")
	require.NoError(t, err)

	// A detection that is not the alert class records history but never
	// triggers a push.
	require.Len(t, f.recorder.histories, 1)
	assert.True(t, f.recorder.histories[0].Status)
	assert.Empty(t, f.recorder.notifications)
}

func TestDetectionService_Dispatch_MissingFile(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	f.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

	_, err := f.service.Dispatch(ctx, "alice", "nope.png")

	require.ErrorIs(t, err, domainerrors.ErrFileMissing)
}

func TestDetectionService_Dispatch_RunsInBackground(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	f.userRepo.On("FindByUsername", ctx, "alice").Return(user, nil)

	storeTestImage(t, f.media, "beach.png")

	f.detectionRepo.On("Create", ctx, mock.MatchedBy(func(j *entity.DetectionJob) bool {
		return j.Source == "beach.png" && j.State == entity.JobDispatched
	})).Return(nil)

	detector := &mocks.Detector{}
	detector.On("Infer", mock.Anything, mock.Anything).Return([]entity.Detection{}, nil)
	detector.On("Close").Return(nil)
	f.factory.On("New", mock.Anything).Return(detector, nil)

	running := make(chan struct{})
	completed := make(chan struct{})
	f.detectionRepo.On("UpdateState", mock.Anything, mock.Anything, entity.JobRunning, "").
		Run(func(mock.Arguments) { close(running) }).Return(nil)
	f.detectionRepo.On("UpdateState", mock.Anything, mock.Anything, entity.JobCompleted, "").
		Run(func(mock.Arguments) { close(completed) }).Return(nil)

	job, err := f.service.Dispatch(ctx, "alice", "beach.png")
	require.NoError(t, err)
	assert.Equal(t, entity.JobDispatched, job.State)

	// The dispatch call returns immediately; the job transitions on its own.
	select {
	case <-running:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started running")
	}
	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("job never completed")
	}
}

func TestDetectionService_RunJob_FailurePersisted(t *testing.T) {
	f := createTestDetectionService(t)
	jobID := uuid.New()
	userID := uuid.New()

	storeTestImage(t, f.media, "beach.png")

	f.factory.On("New", mock.Anything).
		Return(nil, errors.New("inference service unhealthy"))

	var failure string
	f.detectionRepo.On("UpdateState", mock.Anything, jobID, entity.JobRunning, "").Return(nil)
	f.detectionRepo.On("UpdateState", mock.Anything, jobID, entity.JobFailed, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { failure = args.String(3) }).Return(nil)

	f.service.runJob(jobID, userID, "beach.png")

	// The job record carries the failure; no callback was ever attempted.
	f.detectionRepo.AssertExpectations(t)
	assert.Contains(t, failure, "inference service unhealthy")
	assert.Empty(t, f.recorder.histories)
	assert.Empty(t, f.recorder.notifications)
}

func TestDetectionService_GetJob_NotFound(t *testing.T) {
	f := createTestDetectionService(t)
	ctx := context.Background()
	id := uuid.New()

	f.detectionRepo.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)

	_, err := f.service.GetJob(ctx, id)

	require.ErrorIs(t, err, domainerrors.ErrJobNotFound)
}
