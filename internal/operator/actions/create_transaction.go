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

// CreateTransaction inserts a ledger row and applies its signed delta to the
// owning account's cached balance, atomically.
type CreateTransaction struct {
	UserID            uuid.UUID
	AccountID         uuid.UUID
	Type              domain.TransactionType
	Amount            decimal.Decimal
	Category          string
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval *domain.RecurringInterval

	// Result is the created transaction's ID, set on success.
	Result uuid.UUID
}

func (a *CreateTransaction) validate() error {
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

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.validate(); err != nil {
		return err
	}

	// Ownership check: account must belong to the requesting user.
	if _, err := writer.Accounts.FindByID(ctx, a.AccountID, a.UserID); err != nil {
		return err
	}

	var nextRecurringDate *time.Time
	if a.IsRecurring {
		next, err := recurring.Advance(a.Date, *a.RecurringInterval)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		nextRecurringDate = &next
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:            a.UserID,
		AccountID:         a.AccountID,
		Type:              a.Type,
		Amount:            a.Amount,
		Category:          a.Category,
		Description:       a.Description,
		Date:              a.Date,
		Status:            domain.TransactionStatusCompleted,
		IsRecurring:       a.IsRecurring,
		RecurringInterval: a.RecurringInterval,
		NextRecurringDate: nextRecurringDate,
	})
	if err != nil {
		return err
	}

	err = writer.Accounts.IncrementBalance(ctx, a.AccountID, domain.SignedAmount(a.Type, a.Amount))
	if err != nil {
		return err
	}

	a.Result = id
	return nil
}
