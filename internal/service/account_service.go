package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/transaction"
)

// AccountDetail is an account together with its full ledger, newest first.
type AccountDetail struct {
	Account      *domain.Account
	Transactions []*domain.Transaction
}

// AccountService handles account read paths.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// ListAccounts returns the user's accounts with per-account transaction counts.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	return s.storage.Accounts.List(ctx, userID)
}

// GetAccountWithTransactions retrieves one account and its transactions.
func (s *AccountService) GetAccountWithTransactions(ctx context.Context, id, userID uuid.UUID) (*AccountDetail, error) {
	account, err := s.storage.Accounts.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID:    userID,
		AccountID: &account.ID,
	})
	if err != nil {
		return nil, err
	}

	return &AccountDetail{
		Account:      account,
		Transactions: transactions,
	}, nil
}
