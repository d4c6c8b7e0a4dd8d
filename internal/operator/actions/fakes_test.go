package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/account"
	"github.com/finexa/finexa-server/internal/storage/budget"
	"github.com/finexa/finexa-server/internal/storage/transaction"
	"github.com/finexa/finexa-server/internal/storage/user"
)

// fakeStore is an in-memory stand-in for the Postgres tables so actions can
// be exercised end to end without a database.
type fakeStore struct {
	accounts     map[uuid.UUID]*domain.Account
	transactions map[uuid.UUID]*domain.Transaction
	budgets      map[uuid.UUID]*domain.Budget
	users        map[uuid.UUID]*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[uuid.UUID]*domain.Account),
		transactions: make(map[uuid.UUID]*domain.Transaction),
		budgets:      make(map[uuid.UUID]*domain.Budget),
		users:        make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakeStore) writer() *storage.Writer {
	return &storage.Writer{
		Accounts:     &fakeAccountTable{store: f},
		Transactions: &fakeTransactionTable{store: f},
		Budgets:      &fakeBudgetTable{store: f},
		Users:        &fakeUserTable{store: f},
	}
}

func (f *fakeStore) addAccount(userID uuid.UUID, balance string, isDefault bool) *domain.Account {
	acc := &domain.Account{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		Name:      "Checking",
		Type:      domain.AccountTypeCurrent,
		Balance:   decimal.RequireFromString(balance),
		IsDefault: isDefault,
		CreatedAt: time.Now(),
	}
	f.accounts[acc.ID] = acc
	return acc
}

func (f *fakeStore) addTransaction(tx *domain.Transaction) *domain.Transaction {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.Must(uuid.NewV4())
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusCompleted
	}
	f.transactions[tx.ID] = tx
	return tx
}

type fakeAccountTable struct {
	store *fakeStore
}

var _ account.IAccountTable = (*fakeAccountTable)(nil)

func (t *fakeAccountTable) FindByID(_ context.Context, id, userID uuid.UUID) (*domain.Account, error) {
	acc, ok := t.store.accounts[id]
	if !ok || acc.UserID != userID {
		return nil, fmt.Errorf("account.FindByID: %w", domain.ErrNotFound)
	}
	copied := *acc
	return &copied, nil
}

func (t *fakeAccountTable) FindDefault(_ context.Context, userID uuid.UUID) (*domain.Account, error) {
	for _, acc := range t.store.accounts {
		if acc.UserID == userID && acc.IsDefault {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("account.FindDefault: %w", domain.ErrNotFound)
}

func (t *fakeAccountTable) List(_ context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, acc := range t.store.accounts {
		if acc.UserID == userID {
			copied := *acc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (t *fakeAccountTable) CountForUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, acc := range t.store.accounts {
		if acc.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (t *fakeAccountTable) Insert(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	acc := &domain.Account{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    create.UserID,
		Name:      create.Name,
		Type:      create.Type,
		Balance:   create.Balance,
		IsDefault: create.IsDefault,
		CreatedAt: time.Now(),
	}
	t.store.accounts[acc.ID] = acc
	return acc.ID, nil
}

func (t *fakeAccountTable) IncrementBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	acc, ok := t.store.accounts[id]
	if !ok {
		return fmt.Errorf("account.IncrementBalance: %w", domain.ErrNotFound)
	}
	acc.Balance = acc.Balance.Add(delta)
	return nil
}

func (t *fakeAccountTable) ClearDefault(_ context.Context, userID uuid.UUID) error {
	for _, acc := range t.store.accounts {
		if acc.UserID == userID {
			acc.IsDefault = false
		}
	}
	return nil
}

func (t *fakeAccountTable) SetDefault(_ context.Context, id, userID uuid.UUID) error {
	acc, ok := t.store.accounts[id]
	if !ok || acc.UserID != userID {
		return fmt.Errorf("account.SetDefault: %w", domain.ErrNotFound)
	}
	acc.IsDefault = true
	return nil
}

type fakeTransactionTable struct {
	store *fakeStore
}

var _ transaction.ITransactionTable = (*fakeTransactionTable)(nil)

func (t *fakeTransactionTable) FindByID(_ context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	tx, ok := t.store.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, fmt.Errorf("transaction.FindByID: %w", domain.ErrNotFound)
	}
	copied := *tx
	return &copied, nil
}

func (t *fakeTransactionTable) FindByIDs(_ context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, id := range ids {
		if tx, ok := t.store.transactions[id]; ok && tx.UserID == userID {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (t *fakeTransactionTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range t.store.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.AccountID != nil && tx.AccountID != *filter.AccountID {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		copied := *tx
		out = append(out, &copied)
	}
	return out, nil
}

func (t *fakeTransactionTable) ListInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range t.store.transactions {
		if tx.UserID == userID && !tx.Date.Before(from) && !tx.Date.After(to) {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (t *fakeTransactionTable) FindDueRecurring(_ context.Context, now time.Time) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range t.store.transactions {
		copied := *tx
		if recurring.IsDue(&copied, now) && tx.Status == domain.TransactionStatusCompleted {
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (t *fakeTransactionTable) SumExpensesInRange(_ context.Context, userID, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range t.store.transactions {
		if tx.UserID == userID && tx.AccountID == accountID &&
			tx.Type == domain.TransactionTypeExpense &&
			!tx.Date.Before(from) && !tx.Date.After(to) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

func (t *fakeTransactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	status := create.Status
	if status == "" {
		status = domain.TransactionStatusCompleted
	}
	tx := &domain.Transaction{
		ID:                uuid.Must(uuid.NewV4()),
		UserID:            create.UserID,
		AccountID:         create.AccountID,
		Type:              create.Type,
		Amount:            create.Amount,
		Category:          create.Category,
		Description:       create.Description,
		Date:              create.Date,
		Status:            status,
		IsRecurring:       create.IsRecurring,
		RecurringInterval: create.RecurringInterval,
		NextRecurringDate: create.NextRecurringDate,
		CreatedAt:         time.Now(),
	}
	t.store.transactions[tx.ID] = tx
	return tx.ID, nil
}

func (t *fakeTransactionTable) Update(_ context.Context, id, userID uuid.UUID, update *transaction.TransactionUpdate) error {
	tx, ok := t.store.transactions[id]
	if !ok || tx.UserID != userID {
		return fmt.Errorf("transaction.Update: %w", domain.ErrNotFound)
	}
	tx.AccountID = update.AccountID
	tx.Type = update.Type
	tx.Amount = update.Amount
	tx.Category = update.Category
	tx.Description = update.Description
	tx.Date = update.Date
	tx.IsRecurring = update.IsRecurring
	tx.RecurringInterval = update.RecurringInterval
	tx.NextRecurringDate = update.NextRecurringDate
	return nil
}

func (t *fakeTransactionTable) DeleteByIDs(_ context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if tx, ok := t.store.transactions[id]; ok && tx.UserID == userID {
			delete(t.store.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (t *fakeTransactionTable) UpdateRecurringState(_ context.Context, id uuid.UUID, lastProcessed, nextRecurringDate time.Time) error {
	tx, ok := t.store.transactions[id]
	if !ok {
		return fmt.Errorf("transaction.UpdateRecurringState: %w", domain.ErrNotFound)
	}
	lp := lastProcessed
	next := nextRecurringDate
	tx.LastProcessed = &lp
	tx.NextRecurringDate = &next
	return nil
}

type fakeBudgetTable struct {
	store *fakeStore
}

var _ budget.IBudgetTable = (*fakeBudgetTable)(nil)

func (t *fakeBudgetTable) FindByUser(_ context.Context, userID uuid.UUID) (*domain.Budget, error) {
	for _, b := range t.store.budgets {
		if b.UserID == userID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("budget.FindByUser: %w", domain.ErrNotFound)
}

func (t *fakeBudgetTable) ListAll(_ context.Context) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range t.store.budgets {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (t *fakeBudgetTable) Upsert(_ context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Budget, error) {
	for _, b := range t.store.budgets {
		if b.UserID == userID {
			b.Amount = amount
			copied := *b
			return &copied, nil
		}
	}
	b := &domain.Budget{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	t.store.budgets[b.ID] = b
	copied := *b
	return &copied, nil
}

func (t *fakeBudgetTable) UpdateLastAlert(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	b, ok := t.store.budgets[id]
	if !ok {
		return fmt.Errorf("budget.UpdateLastAlert: %w", domain.ErrNotFound)
	}
	sent := sentAt
	b.LastAlertSent = &sent
	return nil
}

type fakeUserTable struct {
	store *fakeStore
}

var _ user.IUserTable = (*fakeUserTable)(nil)

func (t *fakeUserTable) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := t.store.users[id]
	if !ok {
		return nil, fmt.Errorf("user.FindByID: %w", domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (t *fakeUserTable) ListAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range t.store.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (t *fakeUserTable) Upsert(_ context.Context, u *domain.User) error {
	copied := *u
	t.store.users[u.ID] = &copied
	return nil
}
