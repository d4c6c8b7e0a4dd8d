package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage"
)

// DeleteTransactions removes a set of the user's transactions (single and
// bulk share this path) and backs their contributions out of the affected
// balances. Contributions are grouped per account first, so each touched
// account gets exactly one increment statement and no reader can observe a
// partially reconciled state.
type DeleteTransactions struct {
	UserID         uuid.UUID
	TransactionIDs []uuid.UUID

	// Deleted is the number of rows actually removed, set on success.
	Deleted int64
}

func (a *DeleteTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	if len(a.TransactionIDs) == 0 {
		return fmt.Errorf("%w: no transaction ids given", domain.ErrValidation)
	}

	targets, err := writer.Transactions.FindByIDs(ctx, a.TransactionIDs, a.UserID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("delete transactions: %w", domain.ErrNotFound)
	}

	contributions := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range targets {
		contributions[tx.AccountID] = contributions[tx.AccountID].Add(tx.SignedAmount())
	}

	deleted, err := writer.Transactions.DeleteByIDs(ctx, a.idsOf(targets), a.UserID)
	if err != nil {
		return err
	}

	for accountID, sum := range contributions {
		if err = writer.Accounts.IncrementBalance(ctx, accountID, sum.Neg()); err != nil {
			return err
		}
	}

	a.Deleted = deleted
	return nil
}

func (a *DeleteTransactions) idsOf(targets []*domain.Transaction) []uuid.UUID {
	ids := make([]uuid.UUID, len(targets))
	for i, tx := range targets {
		ids[i] = tx.ID
	}
	return ids
}
