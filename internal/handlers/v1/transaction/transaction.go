package transaction

import (
	"time"

	"github.com/finexa/finexa-server/internal/domain"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                string  `json:"id" doc:"Transaction UUID"`
	AccountID         string  `json:"accountID" doc:"Account UUID"`
	Type              string  `json:"type" doc:"INCOME or EXPENSE"`
	Amount            string  `json:"amount" doc:"Decimal amount, always positive"`
	Category          string  `json:"category" doc:"Category slug"`
	Description       string  `json:"description" doc:"Free-form description"`
	Date              string  `json:"date" doc:"RFC3339 transaction date"`
	Status            string  `json:"status" doc:"PENDING or COMPLETED"`
	IsRecurring       bool    `json:"isRecurring" doc:"Whether this is a recurring template"`
	RecurringInterval *string `json:"recurringInterval,omitempty" doc:"DAILY, WEEKLY, MONTHLY or YEARLY"`
	NextRecurringDate *string `json:"nextRecurringDate,omitempty" doc:"RFC3339 next occurrence"`
	CreatedAt         string  `json:"createdAt" doc:"RFC3339 creation time"`
}

// ToAPI converts a domain transaction to its response model.
func ToAPI(tx *domain.Transaction) Transaction {
	out := Transaction{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.String(),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		Status:      string(tx.Status),
		IsRecurring: tx.IsRecurring,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.RecurringInterval != nil {
		interval := string(*tx.RecurringInterval)
		out.RecurringInterval = &interval
	}
	if tx.NextRecurringDate != nil {
		next := tx.NextRecurringDate.Format(time.RFC3339)
		out.NextRecurringDate = &next
	}
	return out
}
