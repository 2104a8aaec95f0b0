package service

import (
	"context"
)

// PushEvent carries everything the push worker needs to deliver one FCM
// message: the resolved device token and the alert content.
type PushEvent struct {
	RequestID      string `json:"request_id,omitempty"` // For distributed tracing
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	DeviceToken    string `json:"device_token"`
	DetectionPath  string `json:"detection_path"`
	Message        string `json:"message"`
}

// EventPublisher defines the interface for publishing push events to a
// message queue for async delivery.
type EventPublisher interface {
	// PublishPushEvent publishes a push event for async processing
	PublishPushEvent(ctx context.Context, event *PushEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
