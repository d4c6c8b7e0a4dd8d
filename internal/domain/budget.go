package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget is a user's monthly spending ceiling. One budget per user, enforced
// by upsert on the user key. LastAlertSent gates the budget monitor to at
// most one alert per calendar month.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	LastAlertSent *time.Time
	CreatedAt     time.Time
}

// User is the minimal identity record mirrored from the auth provider.
// It exists so scheduled jobs can resolve email addresses.
type User struct {
	ID    uuid.UUID
	Email string
	Name  string
}
