// Package vision talks to the external inference service and derives
// annotated frames and thumbnails from media files.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"time"

	"riptide/internal/domain/entity"
	"riptide/internal/domain/service"

	"github.com/pkg/errors"
)

// Inference parameters sent with every request. They mirror the model's
// published defaults.
const (
	ConfidenceThreshold = 0.25
	IoUThreshold        = 0.45
	InputSize           = 640
	MaxDetections       = 1000
)

// remoteDetector implements service.Detector against an HTTP inference
// service. Each detection job gets a fresh instance; nothing is cached
// across jobs.
type remoteDetector struct {
	inferenceURL string
	httpClient   *http.Client
}

type detectorFactory struct {
	inferenceURL string
}

// NewDetectorFactory creates a factory that builds one detector per job.
func NewDetectorFactory(inferenceURL string) service.DetectorFactory {
	return &detectorFactory{inferenceURL: inferenceURL}
}

// New constructs a detector and verifies the inference service is reachable.
// The health probe stands in for the model's cold load.
func (f *detectorFactory) New(ctx context.Context) (service.Detector, error) {
	d := &remoteDetector{
		inferenceURL: f.inferenceURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.inferenceURL+"/health", nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "inference service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}

	return d, nil
}

type inferenceResponse struct {
	Detections []struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
		Box        struct {
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"box"`
	} `json:"detections"`
}

// Infer encodes the frame as JPEG and posts it to the inference service
// together with the model parameters. The service applies the confidence and
// IoU thresholds; results come back already filtered.
func (d *remoteDetector) Infer(ctx context.Context, frame image.Image) ([]entity.Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "frame.jpg")
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}

	if err := jpeg.Encode(part, frame, nil); err != nil {
		return nil, errors.Wrap(err, "encode frame")
	}

	fields := map[string]string{
		"conf_threshold": fmt.Sprintf("%g", ConfidenceThreshold),
		"iou_threshold":  fmt.Sprintf("%g", IoUThreshold),
		"image_size":     fmt.Sprintf("%d", InputSize),
		"max_detections": fmt.Sprintf("%d", MaxDetections),
		"normalize":      "true",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, errors.Wrapf(err, "write field %s", key)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.inferenceURL+"/predict", body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send inference request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, errors.Errorf("inference failed with status %d: %s", resp.StatusCode, payload)
	}

	var result inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode inference response")
	}

	detections := make([]entity.Detection, 0, len(result.Detections))
	for _, det := range result.Detections {
		detections = append(detections, entity.Detection{
			Label:      det.Label,
			Confidence: det.Confidence,
			Box: entity.Box{
				X:      int(math.Round(det.Box.X)),
				Y:      int(math.Round(det.Box.Y)),
				Width:  int(math.Round(det.Box.Width)),
				Height: int(math.Round(det.Box.Height)),
			},
		})
	}

	return detections, nil
}

// Close releases the detector's connections.
func (d *remoteDetector) Close() error {
	d.httpClient.CloseIdleConnections()

	return nil
}
