// Package model defines the BSON document shapes and their mappings to
// domain entities.
package model

import (
	"time"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// UserDoc is the users collection document. IDs are app-generated UUIDs
// stored as strings.
type UserDoc struct {
	ID        string    `bson:"_id"`
	FullName  string    `bson:"full_name"`
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// FromUser maps an entity to its document.
func FromUser(u *entity.User) *UserDoc {
	return &UserDoc{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToEntity maps the document back to the domain entity.
func (d *UserDoc) ToEntity() *entity.User {
	return &entity.User{
		ID:        parseID(d.ID),
		FullName:  d.FullName,
		Username:  d.Username,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// DeviceTokenDoc is the devicetokens collection document.
type DeviceTokenDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	DeviceToken string    `bson:"device_token"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func FromDeviceToken(t *entity.DeviceToken) *DeviceTokenDoc {
	return &DeviceTokenDoc{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		DeviceToken: t.DeviceToken,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d *DeviceTokenDoc) ToEntity() *entity.DeviceToken {
	return &entity.DeviceToken{
		ID:          parseID(d.ID),
		UserID:      parseID(d.UserID),
		DeviceToken: d.DeviceToken,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// HistoryDoc is the histories collection document.
type HistoryDoc struct {
	ID         string    `bson:"_id"`
	ResultPath string    `bson:"result_path"`
	UserID     string    `bson:"user_id"`
	Status     bool      `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func FromHistory(h *entity.History) *HistoryDoc {
	return &HistoryDoc{
		ID:         h.ID.String(),
		ResultPath: h.ResultPath,
		UserID:     h.UserID.String(),
		Status:     h.Status,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

func (d *HistoryDoc) ToEntity() *entity.History {
	return &entity.History{
		ID:         parseID(d.ID),
		ResultPath: d.ResultPath,
		UserID:     parseID(d.UserID),
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// NotificationDoc is the notifications collection document.
type NotificationDoc struct {
	ID            string    `bson:"_id"`
	DetectionPath string    `bson:"detection_path"`
	UserID        string    `bson:"user_id"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func FromNotification(n *entity.Notification) *NotificationDoc {
	return &NotificationDoc{
		ID:            n.ID.String(),
		DetectionPath: n.DetectionPath,
		UserID:        n.UserID.String(),
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (d *NotificationDoc) ToEntity() *entity.Notification {
	return &entity.Notification{
		ID:            parseID(d.ID),
		DetectionPath: d.DetectionPath,
		UserID:        parseID(d.UserID),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// DetectionJobDoc is the detections collection document.
type DetectionJobDoc struct {
	ID        string    `bson:"_id"`
	Source    string    `bson:"source"`
	State     string    `bson:"state"`
	Error     string    `bson:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func FromDetectionJob(j *entity.DetectionJob) *DetectionJobDoc {
	return &DetectionJobDoc{
		ID:        j.ID.String(),
		Source:    j.Source,
		State:     string(j.State),
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func (d *DetectionJobDoc) ToEntity() *entity.DetectionJob {
	return &entity.DetectionJob{
		ID:        parseID(d.ID),
		Source:    d.Source,
		State:     entity.JobState(d.State),
		Error:     d.Error,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// parseID tolerates malformed stored ids by returning the zero UUID rather
// than failing the whole read.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}
