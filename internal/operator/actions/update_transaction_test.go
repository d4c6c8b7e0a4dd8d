package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finexa/finexa-server/internal/domain"
)

func seedExpense(store *fakeStore, userID, accountID uuid.UUID, amount string) *domain.Transaction {
	return store.addTransaction(&domain.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Type:      domain.TransactionTypeExpense,
		Amount:    decimal.RequireFromString(amount),
		Category:  "groceries",
		Date:      time.Now(),
	})
}

func TestUpdateTransaction_FlipTypeReappliesDelta(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "70", true)
	tx := seedExpense(store, userID, acc.ID, "30")

	// Expense 30 becomes income 30: the account gains the old contribution
	// back plus the new one, 70 + 30 + 30 = 130.
	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: tx.ID,
		AccountID:     acc.ID,
		Type:          domain.TransactionTypeIncome,
		Amount:        decimal.RequireFromString("30"),
		Category:      "refund",
		Date:          tx.Date,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("130")),
		"balance after flip: %s", store.accounts[acc.ID].Balance)
	assert.Equal(t, domain.TransactionTypeIncome, store.transactions[tx.ID].Type)
}

func TestUpdateTransaction_SameContributionLeavesBalance(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "70", true)
	tx := seedExpense(store, userID, acc.ID, "30")

	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: tx.ID,
		AccountID:     acc.ID,
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.RequireFromString("30"),
		Category:      "dining",
		Description:   "renamed",
		Date:          tx.Date,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("70")))
	assert.Equal(t, "dining", store.transactions[tx.ID].Category)
}

func TestUpdateTransaction_MoveAcrossAccounts(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	source := store.addAccount(userID, "70", true)
	target := store.addAccount(userID, "200", false)
	tx := seedExpense(store, userID, source.ID, "30")

	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: tx.ID,
		AccountID:     target.ID,
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.RequireFromString("30"),
		Category:      tx.Category,
		Date:          tx.Date,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)

	// The expense leaves the source and lands on the target.
	assert.True(t, store.accounts[source.ID].Balance.Equal(decimal.RequireFromString("100")),
		"source balance: %s", store.accounts[source.ID].Balance)
	assert.True(t, store.accounts[target.ID].Balance.Equal(decimal.RequireFromString("170")),
		"target balance: %s", store.accounts[target.ID].Balance)
	assert.Equal(t, target.ID, store.transactions[tx.ID].AccountID)
}

func TestUpdateTransaction_RejectsForeignTargetAccount(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "70", true)
	foreign := store.addAccount(other, "500", true)
	tx := seedExpense(store, userID, acc.ID, "30")

	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: tx.ID,
		AccountID:     foreign.ID,
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.RequireFromString("30"),
		Category:      tx.Category,
		Date:          tx.Date,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("70")))
	assert.True(t, store.accounts[foreign.ID].Balance.Equal(decimal.RequireFromString("500")))
}

func TestUpdateTransaction_RejectsIntervalOnNonRecurring(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "70", true)
	tx := seedExpense(store, userID, acc.ID, "30")

	interval := domain.IntervalDaily
	action := &UpdateTransaction{
		UserID:            userID,
		TransactionID:     tx.ID,
		AccountID:         acc.ID,
		Type:              domain.TransactionTypeExpense,
		Amount:            decimal.RequireFromString("30"),
		Category:          tx.Category,
		Date:              tx.Date,
		IsRecurring:       false,
		RecurringInterval: &interval,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The stored row keeps no interval and the balance is untouched.
	assert.Nil(t, store.transactions[tx.ID].RecurringInterval)
	assert.False(t, store.transactions[tx.ID].IsRecurring)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("70")))
}

func TestUpdateTransaction_MissingTransaction(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "70", true)

	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: uuid.Must(uuid.NewV4()),
		AccountID:     acc.ID,
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.RequireFromString("30"),
		Category:      "misc",
		Date:          time.Now(),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
