// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobState tracks a detection job through its lifecycle. Failed jobs keep
// their error text; there is no retry.
type JobState string

const (
	JobDispatched JobState = "dispatched"
	JobRunning    JobState = "running"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// DetectionJob is a request to run inference over a previously uploaded media
// file. Ownership belongs to the authenticated session that created it and is
// not stored on the record.
type DetectionJob struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"` // filename in the public media dir
	State     JobState  `json:"state"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Box is an axis-aligned bounding box in pixel coordinates of the source image.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detection is a single object found by the vision model.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}
