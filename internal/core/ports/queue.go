package ports

import "context"

// Dispatcher hands entry ids to the out-of-process work queue. Enqueue
// returns once the id is durably queued; it never waits on processing.
type Dispatcher interface {
	Enqueue(ctx context.Context, entryID string) error
}

// Processor consumes a single dispatched entry id. Implementations must
// contain per-entry failures: a processing error is recorded on the entry
// itself and never propagates out of the worker loop.
type Processor interface {
	Process(ctx context.Context, entryID string) error
}
