package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finexa/finexa-server/internal/storage/account"
	"github.com/finexa/finexa-server/internal/storage/budget"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
	"github.com/finexa/finexa-server/internal/storage/transaction"
	"github.com/finexa/finexa-server/internal/storage/user"
)

// Writer exposes every table through one transaction so an action either
// lands completely or not at all. The fields are interfaces: tests swap in
// fakes the same way services swap table mocks.
type Writer struct {
	tx           pgx.Tx
	Accounts     account.IAccountTable
	Transactions transaction.ITransactionTable
	Budgets      budget.IBudgetTable
	Users        user.IUserTable
}

func NewWriter(tx pgx.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     account.NewTable(tx),
		Transactions: transaction.NewTable(tx),
		Budgets:      budget.NewTable(tx),
		Users:        user.NewTable(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return pgdb.MapError("storage.Commit", w.tx.Commit(ctx))
}

func (w *Writer) Rollback(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return pgdb.MapError("storage.Rollback", w.tx.Rollback(ctx))
}
