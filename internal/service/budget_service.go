package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
)

// BudgetUsage pairs a budget with month-to-date spending on the user's
// default account. Budget is nil when the user has not set one.
type BudgetUsage struct {
	Budget          *domain.Budget
	CurrentExpenses decimal.Decimal
	PercentageUsed  decimal.Decimal
}

// BudgetService handles budget read paths.
type BudgetService struct {
	storage *storage.Storage
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage) *BudgetService {
	return &BudgetService{storage: store}
}

// GetCurrentBudget returns the user's budget and current-month expenses on
// the default account. A missing budget is not an error; spending is still
// reported so the dashboard can prompt for one.
func (s *BudgetService) GetCurrentBudget(ctx context.Context, userID uuid.UUID, now time.Time) (*BudgetUsage, error) {
	budget, err := s.storage.Budgets.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	account, err := s.storage.Accounts.FindDefault(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &BudgetUsage{Budget: budget}, nil
	}
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	expenses, err := s.storage.Transactions.SumExpensesInRange(ctx, userID, account.ID, recurring.MonthStart(now), now)
	if err != nil {
		return nil, err
	}

	usage := &BudgetUsage{
		Budget:          budget,
		CurrentExpenses: expenses,
	}
	if budget != nil && !budget.Amount.IsZero() {
		usage.PercentageUsed = expenses.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	}
	return usage, nil
}
