package service

import (
	"context"

	"riptide/internal/errors"
)

// ErrUnregisteredToken is returned when the messaging gateway reports the
// device token as invalid or no longer registered.
var ErrUnregisteredToken = errors.New("device token unregistered")

// PushService defines the interface for the external push messaging gateway.
type PushService interface {
	// Send delivers a push message to a single device token.
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
