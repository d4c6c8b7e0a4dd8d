package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction. The sign of its balance
// contribution is derived from the type; Amount is always stored positive.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionStatus is the processing status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// RecurringInterval is the cadence of a recurring transaction template.
type RecurringInterval string

const (
	IntervalDaily   RecurringInterval = "DAILY"
	IntervalWeekly  RecurringInterval = "WEEKLY"
	IntervalMonthly RecurringInterval = "MONTHLY"
	IntervalYearly  RecurringInterval = "YEARLY"
)

// Valid reports whether iv is a known recurring interval.
func (iv RecurringInterval) Valid() bool {
	switch iv {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

// Transaction is a ledger row. A recurring transaction acts as a template:
// the scheduler materializes concrete copies and only advances the template's
// LastProcessed/NextRecurringDate, never deletes it.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AccountID         uuid.UUID
	Type              TransactionType
	Amount            decimal.Decimal
	Category          string
	Description       string
	Date              time.Time
	Status            TransactionStatus
	IsRecurring       bool
	RecurringInterval *RecurringInterval
	LastProcessed     *time.Time
	NextRecurringDate *time.Time
	CreatedAt         time.Time
}

// SignedAmount is the transaction's contribution to its account balance:
// negative for expenses, positive for income.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SignedAmount returns the balance contribution of an amount under a type
// without needing a full Transaction value.
func SignedAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}
