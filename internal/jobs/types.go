// Package jobs defines the dispatch interfaces between the daily recurring
// sweep and the per-task processors. The queue implementation is pluggable;
// the in-memory one lives in jobs/inmemory.
package jobs

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// RecurringTask asks a worker to process one due recurring transaction.
type RecurringTask struct {
	TaskID        string    `json:"task_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	UserID        uuid.UUID `json:"user_id"`
	EnqueuedAt    time.Time `json:"enqueued_at"`

	// Attempts counts deliveries so far, managed by the queue.
	Attempts int `json:"attempts"`
}

// Handler processes one task. A returned error requests a retry; the queue
// drops the task after its attempt budget is spent.
type Handler func(ctx context.Context, task *RecurringTask) error

// Publisher accepts a batch of tasks in one call, so a sweep that finds many
// due transactions does not pay one dispatch round-trip per row.
type Publisher interface {
	Publish(ctx context.Context, tasks ...*RecurringTask) error
	Close() error
}

// Consumer runs the worker pool that drains the queue.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}
