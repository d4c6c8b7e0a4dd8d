package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/jobs"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/transaction"
)

type stubDueTransactions struct {
	transaction.ITransactionTable
	due []*domain.Transaction
}

func (s *stubDueTransactions) FindDueRecurring(context.Context, time.Time) ([]*domain.Transaction, error) {
	return s.due, nil
}

type recordingPublisher struct {
	published []*jobs.RecurringTask
}

func (p *recordingPublisher) Publish(_ context.Context, tasks ...*jobs.RecurringTask) error {
	p.published = append(p.published, tasks...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestRecurringSweep_PublishesOneTaskPerDueTemplate(t *testing.T) {
	userA := uuid.Must(uuid.NewV4())
	userB := uuid.Must(uuid.NewV4())
	due := []*domain.Transaction{
		{ID: uuid.Must(uuid.NewV4()), UserID: userA, Amount: decimal.RequireFromString("50")},
		{ID: uuid.Must(uuid.NewV4()), UserID: userA, Amount: decimal.RequireFromString("9.99")},
		{ID: uuid.Must(uuid.NewV4()), UserID: userB, Amount: decimal.RequireFromString("120")},
	}

	store := &storage.Storage{Transactions: &stubDueTransactions{due: due}}
	publisher := &recordingPublisher{}
	sweep := NewRecurringSweep(store, publisher, logrus.New())

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	err := sweep.Run(context.Background(), now)
	assert.NoError(t, err)

	if assert.Len(t, publisher.published, 3) {
		seen := make(map[uuid.UUID]bool)
		for i, task := range publisher.published {
			assert.Equal(t, due[i].ID, task.TransactionID)
			assert.Equal(t, due[i].UserID, task.UserID)
			assert.Equal(t, now, task.EnqueuedAt)
			assert.NotEmpty(t, task.TaskID)
			seen[task.TransactionID] = true
		}
		assert.Len(t, seen, 3)
	}
}

func TestRecurringSweep_NothingDuePublishesNothing(t *testing.T) {
	store := &storage.Storage{Transactions: &stubDueTransactions{}}
	publisher := &recordingPublisher{}
	sweep := NewRecurringSweep(store, publisher, logrus.New())

	err := sweep.Run(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, publisher.published)
}
