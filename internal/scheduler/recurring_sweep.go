package scheduler

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/finexa/finexa-server/internal/jobs"
	"github.com/finexa/finexa-server/internal/operator"
	"github.com/finexa/finexa-server/internal/operator/actions"
	"github.com/finexa/finexa-server/internal/storage"
)

// RecurringSweep finds due recurring transactions once a day and fans them
// out to the queue as one task per transaction. The worker-side processor
// re-checks dueness, so a redelivered or stale task is a no-op, not a
// duplicate posting.
type RecurringSweep struct {
	store     *storage.Storage
	publisher jobs.Publisher
	logger    *logrus.Logger
}

func NewRecurringSweep(store *storage.Storage, publisher jobs.Publisher, logger *logrus.Logger) *RecurringSweep {
	return &RecurringSweep{store: store, publisher: publisher, logger: logger}
}

func (s *RecurringSweep) Name() string { return "recurring_sweep" }

func (s *RecurringSweep) Run(ctx context.Context, now time.Time) error {
	due, err := s.store.Transactions.FindDueRecurring(ctx, now.UTC())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	tasks := make([]*jobs.RecurringTask, 0, len(due))
	for _, tx := range due {
		taskID, err := uuid.NewV4()
		if err != nil {
			return err
		}
		tasks = append(tasks, &jobs.RecurringTask{
			TaskID:        taskID.String(),
			TransactionID: tx.ID,
			UserID:        tx.UserID,
			EnqueuedAt:    now.UTC(),
		})
	}

	if err := s.publisher.Publish(ctx, tasks...); err != nil {
		return err
	}

	s.logger.WithField("tasks", len(tasks)).Info("recurring sweep published")
	return nil
}

// Handler returns the queue handler that materializes one recurring
// transaction through the operator, so the copy and the balance update
// share a database transaction.
func RecurringHandler(delegator *operator.OperatorDelegator, logger *logrus.Logger) jobs.Handler {
	return func(ctx context.Context, task *jobs.RecurringTask) error {
		action := &actions.ProcessRecurring{
			TransactionID: task.TransactionID,
			UserID:        task.UserID,
			Now:           time.Now().UTC(),
		}
		if err := delegator.Process(ctx, action); err != nil {
			return err
		}
		if action.Skipped {
			logger.WithFields(logrus.Fields{
				"task_id":        task.TaskID,
				"transaction_id": task.TransactionID,
			}).Info("recurring task skipped, not due")
		}
		return nil
	}
}
