package service

import (
	"context"
	"image"

	"riptide/internal/domain/entity"
)

// Detector runs object detection over a single frame. The interface is kept
// narrow so the coordination logic stays decoupled from any model runtime and
// testable with a fake.
type Detector interface {
	// Infer returns the detections found in the frame, already filtered by
	// the model's confidence threshold.
	Infer(ctx context.Context, frame image.Image) ([]entity.Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// DetectorFactory constructs a fresh Detector per detection job. The model is
// loaded cold on every invocation; nothing is cached across jobs.
type DetectorFactory interface {
	New(ctx context.Context) (Detector, error)
}
