package account

import (
	"time"

	"github.com/finexa/finexa-server/internal/domain"
)

// Account is the API response model for an account.
type Account struct {
	ID               string `json:"id" doc:"Account UUID"`
	Name             string `json:"name" doc:"Account name"`
	Type             string `json:"type" doc:"Account type: CURRENT or SAVINGS"`
	Balance          string `json:"balance" doc:"Decimal balance"`
	IsDefault        bool   `json:"isDefault" doc:"Whether this is the user's default account"`
	TransactionCount int    `json:"transactionCount" doc:"Number of transactions on the account"`
	CreatedAt        string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAPI(acc *domain.Account) Account {
	return Account{
		ID:               acc.ID.String(),
		Name:             acc.Name,
		Type:             string(acc.Type),
		Balance:          acc.Balance.String(),
		IsDefault:        acc.IsDefault,
		TransactionCount: acc.TransactionCount,
		CreatedAt:        acc.CreatedAt.Format(time.RFC3339),
	}
}
