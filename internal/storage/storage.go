package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finexa/finexa-server/internal/config"
	"github.com/finexa/finexa-server/internal/storage/account"
	"github.com/finexa/finexa-server/internal/storage/budget"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
	"github.com/finexa/finexa-server/internal/storage/transaction"
	"github.com/finexa/finexa-server/internal/storage/user"
)

// Storage is the read-side facade over the connection pool. Multi-statement
// atomic units go through Write, which hands out a transaction-bound Writer.
type Storage struct {
	pool         *pgxpool.Pool
	Accounts     account.IAccountTable
	Transactions transaction.ITransactionTable
	Budgets      budget.IBudgetTable
	Users        user.IUserTable
}

func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, env.ConnectionString())
	if err != nil {
		return nil, pgdb.MapError("storage.NewStorage", err)
	}

	return &Storage{
		pool:         pool,
		Accounts:     account.NewTable(pool),
		Transactions: transaction.NewTable(pool),
		Budgets:      budget.NewTable(pool),
		Users:        user.NewTable(pool),
	}, nil
}

// Write begins a transaction and returns a Writer bound to it. The caller
// must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, pgdb.MapError("storage.Write", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
