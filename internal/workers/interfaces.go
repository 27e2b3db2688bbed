// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must return immediately and keep working until ctx is cancelled or
// Stop is called. Stop blocks until the worker's goroutines have exited.
//
// service.SyncJob satisfies this interface.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
