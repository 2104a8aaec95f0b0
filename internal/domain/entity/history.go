// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// History records the outcome of one completed detection run.
// Immutable after creation.
type History struct {
	ID         uuid.UUID `json:"id"`
	ResultPath string    `json:"result_path"` // annotated image filename in the detections dir
	UserID     uuid.UUID `json:"user_id"`
	Status     bool      `json:"status"` // true when at least one detection was found
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
