package service

import (
	"github.com/finexa/finexa-server/internal/storage"
)

// Service holds all read-side business logic services. Mutations go through
// the operator instead.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Budget      *BudgetService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Transaction: NewTransactionService(store),
		Account:     NewAccountService(store),
		Budget:      NewBudgetService(store),
	}
}
