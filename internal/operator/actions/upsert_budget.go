package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage"
)

// UpsertBudget creates or replaces the user's single monthly budget.
type UpsertBudget struct {
	UserID uuid.UUID
	Amount decimal.Decimal

	// Result is the stored budget, set on success.
	Result *domain.Budget
}

func (a *UpsertBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.IsNegative() {
		return fmt.Errorf("%w: budget amount must not be negative", domain.ErrValidation)
	}

	budget, err := writer.Budgets.Upsert(ctx, a.UserID, a.Amount)
	if err != nil {
		return err
	}

	a.Result = budget
	return nil
}
