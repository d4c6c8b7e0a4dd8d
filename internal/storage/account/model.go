package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
)

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID    uuid.UUID
	Name      string
	Type      domain.AccountType
	Balance   decimal.Decimal
	IsDefault bool
}

// IAccountTable defines the interface for account storage operations.
// All reads and writes are scoped to the owning user.
type IAccountTable interface {
	FindByID(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	ClearDefault(ctx context.Context, userID uuid.UUID) error
	SetDefault(ctx context.Context, id, userID uuid.UUID) error
}
