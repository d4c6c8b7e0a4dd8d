// Package inmemory is a channel-backed implementation of the jobs queue.
// It is suitable for a single-instance deployment: tasks do not survive a
// restart, but the sweep is re-entrant and simply re-enqueues whatever is
// still due on the next cycle.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/finexa/finexa-server/internal/jobs"
)

// Config sizes the queue and its throttling.
type Config struct {
	BufferSize  int
	Workers     int
	MaxAttempts int

	// TasksPerUserPerMinute bounds burst load per user: when many templates
	// share a due date the ledger store sees at most this many writes per
	// user per minute. Tasks over the cap are requeued, not dropped.
	TasksPerUserPerMinute int

	// RetryBaseDelay is the first retry's delay; it doubles per attempt.
	RetryBaseDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		BufferSize:            1000,
		Workers:               5,
		MaxAttempts:           3,
		TasksPerUserPerMinute: 10,
		RetryBaseDelay:        time.Second,
	}
}

// Queue implements jobs.Publisher and jobs.Consumer over a buffered channel.
type Queue struct {
	cfg       Config
	logger    *logrus.Logger
	taskChan  chan *jobs.RecurringTask
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool

	throttle *userThrottle
}

func NewQueue(cfg Config, logger *logrus.Logger) *Queue {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.TasksPerUserPerMinute <= 0 {
		cfg.TasksPerUserPerMinute = DefaultConfig().TasksPerUserPerMinute
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultConfig().RetryBaseDelay
	}

	return &Queue{
		cfg:       cfg,
		logger:    logger,
		taskChan:  make(chan *jobs.RecurringTask, cfg.BufferSize),
		closeChan: make(chan struct{}),
		throttle:  newUserThrottle(cfg.TasksPerUserPerMinute),
	}
}

// Publish enqueues a batch of tasks.
func (q *Queue) Publish(ctx context.Context, tasks ...*jobs.RecurringTask) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	for _, task := range tasks {
		if task.TaskID == "" {
			task.TaskID = uuid.Must(uuid.NewV4()).String()
		}
		if task.EnqueuedAt.IsZero() {
			task.EnqueuedAt = time.Now()
		}

		select {
		case q.taskChan <- task:
		case <-ctx.Done():
			return ctx.Err()
		case <-q.closeChan:
			return fmt.Errorf("queue is closed")
		}
	}
	return nil
}

// Start launches the worker pool. The handler runs concurrently across
// tasks; tasks for one user are throttled, not serialized.
func (q *Queue) Start(ctx context.Context, handler jobs.Handler) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return fmt.Errorf("queue is closed")
	}
	q.mu.RUnlock()

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}
	return nil
}

func (q *Queue) worker(ctx context.Context, handler jobs.Handler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case task := <-q.taskChan:
			q.handleTask(ctx, handler, task)
		}
	}
}

func (q *Queue) handleTask(ctx context.Context, handler jobs.Handler, task *jobs.RecurringTask) {
	if !q.throttle.allow(task.UserID) {
		// Over the per-user cap for this minute window. Requeue after a
		// pause without spending an attempt.
		q.requeueLater(task, q.throttle.retryAfter())
		return
	}

	task.Attempts++
	err := handler(ctx, task)
	if err == nil {
		return
	}

	if task.Attempts >= q.cfg.MaxAttempts {
		q.logger.WithFields(logrus.Fields{
			"taskID":        task.TaskID,
			"transactionID": task.TransactionID,
			"userID":        task.UserID,
			"attempts":      task.Attempts,
		}).WithError(err).Error("Queue.Task.Dropped")
		return
	}

	delay := q.cfg.RetryBaseDelay << (task.Attempts - 1)
	q.logger.WithFields(logrus.Fields{
		"taskID":   task.TaskID,
		"attempts": task.Attempts,
		"delay":    delay.String(),
	}).WithError(err).Warn("Queue.Task.Retry")
	q.requeueLater(task, delay)
}

func (q *Queue) requeueLater(task *jobs.RecurringTask, delay time.Duration) {
	time.AfterFunc(delay, func() {
		q.mu.RLock()
		defer q.mu.RUnlock()
		if q.closed {
			return
		}
		select {
		case q.taskChan <- task:
		case <-q.closeChan:
		}
	})
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

var (
	_ jobs.Publisher = (*Queue)(nil)
	_ jobs.Consumer  = (*Queue)(nil)
)
