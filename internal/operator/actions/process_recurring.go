package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/transaction"
)

// ProcessRecurring materializes one occurrence of a recurring template in a
// single transaction. It inserts a concrete copy and applies the signed delta
// to the account balance, then advances the template's schedule.
//
// The dispatch mechanism may redeliver a task, so the action re-checks
// dueness against the stored row and skips silently when another delivery
// already processed this cycle.
type ProcessRecurring struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Now           time.Time

	// Skipped is true when the template was gone or no longer due.
	Skipped bool
}

func (a *ProcessRecurring) Perform(ctx context.Context, writer *storage.Writer) error {
	template, err := writer.Transactions.FindByID(ctx, a.TransactionID, a.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.Skipped = true
			return nil
		}
		return err
	}

	if !recurring.IsDue(template, a.Now) {
		a.Skipped = true
		return nil
	}

	if template.RecurringInterval == nil {
		return fmt.Errorf("recurring template %s has no interval", template.ID)
	}
	next, err := recurring.Advance(a.Now, *template.RecurringInterval)
	if err != nil {
		return fmt.Errorf("recurring template %s: %w", template.ID, err)
	}

	// The copy is a plain completed transaction; the template itself is
	// never deleted here, only advanced.
	_, err = writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      template.UserID,
		AccountID:   template.AccountID,
		Type:        template.Type,
		Amount:      template.Amount,
		Category:    template.Category,
		Description: template.Description + " (Recurring)",
		Date:        a.Now,
		Status:      domain.TransactionStatusCompleted,
		IsRecurring: false,
	})
	if err != nil {
		return err
	}

	err = writer.Accounts.IncrementBalance(ctx, template.AccountID, template.SignedAmount())
	if err != nil {
		return err
	}

	return writer.Transactions.UpdateRecurringState(ctx, template.ID, a.Now, next)
}
