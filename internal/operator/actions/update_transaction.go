package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/transaction"
)

// UpdateTransaction rewrites a ledger row and reconciles the balance delta.
// The old contribution comes from the stored row, not the request, so an
// edit that flips type or moves the row to another account nets correctly.
type UpdateTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID

	AccountID         uuid.UUID
	Type              domain.TransactionType
	Amount            decimal.Decimal
	Category          string
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval *domain.RecurringInterval
}

func (a *UpdateTransaction) validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, a.Type)
	}
	if !a.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if a.IsRecurring && a.RecurringInterval == nil {
		return fmt.Errorf("%w: recurring transaction requires an interval", domain.ErrValidation)
	}
	if !a.IsRecurring && a.RecurringInterval != nil {
		return fmt.Errorf("%w: interval given for non-recurring transaction", domain.ErrValidation)
	}
	return nil
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.validate(); err != nil {
		return err
	}

	original, err := writer.Transactions.FindByID(ctx, a.TransactionID, a.UserID)
	if err != nil {
		return err
	}

	if a.AccountID != original.AccountID {
		// Reassignment: the target account must also belong to the user.
		if _, err = writer.Accounts.FindByID(ctx, a.AccountID, a.UserID); err != nil {
			return err
		}
	}

	var nextRecurringDate *time.Time
	if a.IsRecurring {
		next, advErr := recurring.Advance(a.Date, *a.RecurringInterval)
		if advErr != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, advErr)
		}
		nextRecurringDate = &next
	}

	err = writer.Transactions.Update(ctx, a.TransactionID, a.UserID, &transaction.TransactionUpdate{
		AccountID:         a.AccountID,
		Type:              a.Type,
		Amount:            a.Amount,
		Category:          a.Category,
		Description:       a.Description,
		Date:              a.Date,
		IsRecurring:       a.IsRecurring,
		RecurringInterval: a.RecurringInterval,
		NextRecurringDate: nextRecurringDate,
	})
	if err != nil {
		return err
	}

	oldContribution := original.SignedAmount()
	newContribution := domain.SignedAmount(a.Type, a.Amount)

	if a.AccountID == original.AccountID {
		net := newContribution.Sub(oldContribution)
		if net.IsZero() {
			return nil
		}
		return writer.Accounts.IncrementBalance(ctx, a.AccountID, net)
	}

	// Row moved between accounts: back the old contribution out of the old
	// account and apply the new one to the new account.
	if err = writer.Accounts.IncrementBalance(ctx, original.AccountID, oldContribution.Neg()); err != nil {
		return err
	}
	return writer.Accounts.IncrementBalance(ctx, a.AccountID, newContribution)
}
