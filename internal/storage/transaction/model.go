package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
)

// TransactionCreate is the input for inserting a ledger row.
type TransactionCreate struct {
	UserID            uuid.UUID
	AccountID         uuid.UUID
	Type              domain.TransactionType
	Amount            decimal.Decimal
	Category          string
	Description       string
	Date              time.Time
	Status            domain.TransactionStatus
	IsRecurring       bool
	RecurringInterval *domain.RecurringInterval
	NextRecurringDate *time.Time
}

// TransactionUpdate carries the full replacement state for a user edit.
// The balance delta against the old row is computed by the caller.
type TransactionUpdate struct {
	AccountID         uuid.UUID
	Type              domain.TransactionType
	Amount            decimal.Decimal
	Category          string
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval *domain.RecurringInterval
	NextRecurringDate *time.Time
}

// TransactionFilter selects rows for listing. UserID is mandatory; the rest
// narrow the result.
type TransactionFilter struct {
	UserID          uuid.UUID
	AccountID       *uuid.UUID
	Type            *domain.TransactionType
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
type ITransactionTable interface {
	FindByID(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*domain.Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*domain.Transaction, error)
	ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Transaction, error)
	FindDueRecurring(ctx context.Context, now time.Time) ([]*domain.Transaction, error)
	SumExpensesInRange(ctx context.Context, userID, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, id, userID uuid.UUID, update *TransactionUpdate) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)
	UpdateRecurringState(ctx context.Context, id uuid.UUID, lastProcessed, nextRecurringDate time.Time) error
}
