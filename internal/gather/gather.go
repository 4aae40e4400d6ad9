// Package gather fetches historical market data into local storage.
package gather

import "context"

// Gatherer is the interface for all data gathering processes.
type Gatherer interface {
	// Name returns the gatherer identifier.
	Name() string
	// Run executes one gathering pass. It returns early if ctx is cancelled.
	Run(ctx context.Context) error
}
