package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/notify"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
)

// alertThreshold is the percentage of budget usage that triggers an email.
var alertThreshold = decimal.NewFromInt(80)

// BudgetMonitor checks every budget against month-to-date spending on the
// user's default account and emails an alert when usage crosses the
// threshold. The LastAlertSent timestamp caps alerts at one per calendar
// month, and is only written after the email actually goes out.
type BudgetMonitor struct {
	store    *storage.Storage
	notifier notify.Notifier
	logger   *logrus.Logger
}

func NewBudgetMonitor(store *storage.Storage, notifier notify.Notifier, logger *logrus.Logger) *BudgetMonitor {
	return &BudgetMonitor{store: store, notifier: notifier, logger: logger}
}

func (m *BudgetMonitor) Name() string { return "budget_monitor" }

func (m *BudgetMonitor) Run(ctx context.Context, now time.Time) error {
	budgets, err := m.store.Budgets.ListAll(ctx)
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4)

	for _, budget := range budgets {
		budget := budget
		group.Go(func() error {
			// One broken budget must not stop the rest of the sweep.
			if err := m.check(ctx, budget, now.UTC()); err != nil {
				m.logger.WithError(err).WithField("budget_id", budget.ID).Error("budget check failed")
			}
			return nil
		})
	}

	return group.Wait()
}

func (m *BudgetMonitor) check(ctx context.Context, budget *domain.Budget, now time.Time) error {
	account, err := m.store.Accounts.FindDefault(ctx, budget.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		// No default account means nothing to measure against.
		return nil
	}
	if err != nil {
		return err
	}

	expenses, err := m.store.Transactions.SumExpensesInRange(ctx, budget.UserID, account.ID, recurring.MonthStart(now), now)
	if err != nil {
		return err
	}

	// A zero budget is treated as 0% used rather than dividing by zero.
	if budget.Amount.IsZero() {
		return nil
	}

	percentageUsed := expenses.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	if percentageUsed.LessThan(alertThreshold) {
		return nil
	}
	if budget.LastAlertSent != nil && recurring.SameMonth(*budget.LastAlertSent, now) {
		return nil
	}

	user, err := m.store.Users.FindByID(ctx, budget.UserID)
	if err != nil {
		return err
	}

	email, err := notify.RenderBudgetAlert(user.Email, notify.BudgetAlertData{
		UserName:       user.Name,
		AccountName:    account.Name,
		PercentageUsed: percentageUsed,
		BudgetAmount:   budget.Amount,
		TotalExpenses:  expenses,
	})
	if err != nil {
		return err
	}

	if err := m.notifier.Send(ctx, email); err != nil {
		// Delivery failed, so leave LastAlertSent untouched and let the
		// next sweep retry.
		return err
	}

	if err := m.store.Budgets.UpdateLastAlert(ctx, budget.ID, now); err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"budget_id":       budget.ID,
		"percentage_used": percentageUsed.Round(1).String(),
	}).Info("budget alert sent")
	return nil
}
