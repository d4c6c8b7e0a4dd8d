package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/notify"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/account"
	"github.com/finexa/finexa-server/internal/storage/budget"
	"github.com/finexa/finexa-server/internal/storage/transaction"
	"github.com/finexa/finexa-server/internal/storage/user"
)

// Interface-embedding stubs: only the methods a test exercises are filled
// in; an unexpected call panics through the nil embedded interface.

type stubBudgets struct {
	budget.IBudgetTable
	budgets    []*domain.Budget
	lastAlerts map[uuid.UUID]time.Time
}

func (s *stubBudgets) ListAll(context.Context) ([]*domain.Budget, error) {
	return s.budgets, nil
}

func (s *stubBudgets) UpdateLastAlert(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	if s.lastAlerts == nil {
		s.lastAlerts = make(map[uuid.UUID]time.Time)
	}
	s.lastAlerts[id] = sentAt
	return nil
}

type stubAccounts struct {
	account.IAccountTable
	defaultAccount *domain.Account
}

func (s *stubAccounts) FindDefault(context.Context, uuid.UUID) (*domain.Account, error) {
	if s.defaultAccount == nil {
		return nil, domain.ErrNotFound
	}
	return s.defaultAccount, nil
}

type stubTransactions struct {
	transaction.ITransactionTable
	expenses decimal.Decimal
	inRange  []*domain.Transaction
}

func (s *stubTransactions) SumExpensesInRange(context.Context, uuid.UUID, uuid.UUID, time.Time, time.Time) (decimal.Decimal, error) {
	return s.expenses, nil
}

func (s *stubTransactions) ListInRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*domain.Transaction, error) {
	return s.inRange, nil
}

type stubUsers struct {
	user.IUserTable
	users []*domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUsers) ListAll(context.Context) ([]*domain.User, error) {
	return s.users, nil
}

type recordingNotifier struct {
	sent []notify.Email
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, email notify.Email) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, email)
	return nil
}

type monitorFixture struct {
	monitor  *BudgetMonitor
	budgets  *stubBudgets
	notifier *recordingNotifier
}

func newMonitorFixture(budgetAmount, expenses string, lastAlert *time.Time) *monitorFixture {
	userID := uuid.Must(uuid.NewV4())
	b := &domain.Budget{
		ID:            uuid.Must(uuid.NewV4()),
		UserID:        userID,
		Amount:        decimal.RequireFromString(budgetAmount),
		LastAlertSent: lastAlert,
	}

	budgets := &stubBudgets{budgets: []*domain.Budget{b}}
	notifier := &recordingNotifier{}
	store := &storage.Storage{
		Budgets: budgets,
		Accounts: &stubAccounts{defaultAccount: &domain.Account{
			ID:     uuid.Must(uuid.NewV4()),
			UserID: userID,
			Name:   "Checking",
		}},
		Transactions: &stubTransactions{expenses: decimal.RequireFromString(expenses)},
		Users: &stubUsers{users: []*domain.User{
			{ID: userID, Email: "user@example.com", Name: "Sam"},
		}},
	}

	logger := logrus.New()
	return &monitorFixture{
		monitor:  NewBudgetMonitor(store, notifier, logger),
		budgets:  budgets,
		notifier: notifier,
	}
}

func TestBudgetMonitor_BelowThresholdNoAlert(t *testing.T) {
	f := newMonitorFixture("1000", "799", nil)

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
	assert.Empty(t, f.budgets.lastAlerts)
}

func TestBudgetMonitor_AtThresholdSendsAlert(t *testing.T) {
	f := newMonitorFixture("1000", "800", nil)

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	err := f.monitor.Run(context.Background(), now)
	assert.NoError(t, err)

	if assert.Len(t, f.notifier.sent, 1) {
		email := f.notifier.sent[0]
		assert.Equal(t, "user@example.com", email.To)
		assert.Contains(t, email.Subject, "Checking")
		assert.Contains(t, email.HTML, "80")
	}
	assert.Len(t, f.budgets.lastAlerts, 1)
}

func TestBudgetMonitor_AlertSuppressedWithinMonth(t *testing.T) {
	alreadySent := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f := newMonitorFixture("1000", "950", &alreadySent)

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestBudgetMonitor_AlertRearmsNextMonth(t *testing.T) {
	sentLastMonth := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)
	f := newMonitorFixture("1000", "900", &sentLastMonth)

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Len(t, f.notifier.sent, 1)
}

func TestBudgetMonitor_ZeroBudgetNoAlert(t *testing.T) {
	f := newMonitorFixture("0", "500", nil)

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestBudgetMonitor_NoDefaultAccountSkips(t *testing.T) {
	f := newMonitorFixture("1000", "900", nil)
	f.monitor.store.Accounts = &stubAccounts{}

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}

func TestBudgetMonitor_SendFailureLeavesGateOpen(t *testing.T) {
	f := newMonitorFixture("1000", "900", nil)
	f.notifier.err = errors.New("resend unavailable")

	err := f.monitor.Run(context.Background(), time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	// Delivery failed, so the month gate stays open for the next sweep.
	assert.Empty(t, f.budgets.lastAlerts)
}
