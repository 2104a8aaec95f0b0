// Package delivery defines the contract served entrypoints implement.
package delivery

import "context"

// Delivery is a long-running server started by the application runtime.
// Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
