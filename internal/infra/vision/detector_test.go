package vision

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 64, 48))
}

func newFakeInferenceServer(t *testing.T, responseBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(16<<20))

		assert.Equal(t, "0.25", r.FormValue("conf_threshold"))
		assert.Equal(t, "0.45", r.FormValue("iou_threshold"))
		assert.Equal(t, "640", r.FormValue("image_size"))
		assert.Equal(t, "1000", r.FormValue("max_detections"))
		assert.Equal(t, "true", r.FormValue("normalize"))

		_, _, err := r.FormFile("file")
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestRemoteDetector_Infer(t *testing.T) {
	server := newFakeInferenceServer(t, `{
		"detections": [
			{"label": "rip", "confidence": 0.91, "box": {"x": 10, "y": 20, "width": 100, "height": 50}},
			{"label": "person", "confidence": 0.4, "box": {"x": 0, "y": 0, "width": 30, "height": 60}}
		]
	}`)

	factory := NewDetectorFactory(server.URL)
	detector, err := factory.New(context.Background())
	require.NoError(t, err)
	defer detector.Close()

	detections, err := detector.Infer(context.Background(), testFrame())
	require.NoError(t, err)
	require.Len(t, detections, 2)

	assert.Equal(t, "rip", detections[0].Label)
	assert.InDelta(t, 0.91, detections[0].Confidence, 1e-9)
	assert.Equal(t, 10, detections[0].Box.X)
	assert.Equal(t, 20, detections[0].Box.Y)
	assert.Equal(t, 100, detections[0].Box.Width)
	assert.Equal(t, 50, detections[0].Box.Height)
	assert.Equal(t, "person", detections[1].Label)
}

func TestRemoteDetector_InferEmpty(t *testing.T) {
	server := newFakeInferenceServer(t, `{"detections": []}`)

	factory := NewDetectorFactory(server.URL)
	detector, err := factory.New(context.Background())
	require.NoError(t, err)
	defer detector.Close()

	detections, err := detector.Infer(context.Background(), testFrame())
	require.NoError(t, err)
	assert.Empty(t, detections)
}

func TestRemoteDetector_InferServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	factory := NewDetectorFactory(server.URL)
	detector, err := factory.New(context.Background())
	require.NoError(t, err)
	defer detector.Close()

	_, err = detector.Infer(context.Background(), testFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDetectorFactory_UnhealthyService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	factory := NewDetectorFactory(server.URL)
	_, err := factory.New(context.Background())
	require.Error(t, err)
}
