package sink

import (
	"context"

	"liontalk/seminarworker/internal/seminar"
)

// Sink represents a destination for the aggregated output collection. The
// whole collection is handed over once, after the batch finishes.
type Sink interface {
	// Write persists the output collection
	Write(ctx context.Context, records []seminar.Record) error

	// Close closes the sink connection
	Close() error
}
