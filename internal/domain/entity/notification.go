// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification records that a detection of the alert class fired for a user.
// Creating one triggers a push message to the user's registered device.
type Notification struct {
	ID            uuid.UUID `json:"id"`
	DetectionPath string    `json:"detection_path"` // annotated image filename that triggered the alert
	UserID        uuid.UUID `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
