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

func TestCreateTransaction_ExpenseDecrementsBalance(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "100", true)

	action := &CreateTransaction{
		UserID:    userID,
		AccountID: acc.ID,
		Type:      domain.TransactionTypeExpense,
		Amount:    decimal.RequireFromString("30"),
		Category:  "groceries",
		Date:      time.Now(),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, action.Result)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("70")),
		"balance after expense: %s", store.accounts[acc.ID].Balance)
}

func TestCreateTransaction_IncomeIncrementsBalance(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "100", true)

	action := &CreateTransaction{
		UserID:    userID,
		AccountID: acc.ID,
		Type:      domain.TransactionTypeIncome,
		Amount:    decimal.RequireFromString("25.50"),
		Category:  "salary",
		Date:      time.Now(),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("125.50")))
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "100", true)

	for _, amount := range []string{"0", "-5"} {
		action := &CreateTransaction{
			UserID:    userID,
			AccountID: acc.ID,
			Type:      domain.TransactionTypeExpense,
			Amount:    decimal.RequireFromString(amount),
			Category:  "misc",
			Date:      time.Now(),
		}

		err := action.Perform(context.Background(), store.writer())
		assert.ErrorIs(t, err, domain.ErrValidation, "amount %s", amount)
	}
	assert.True(t, store.accounts[acc.ID].Balance.Equal(decimal.RequireFromString("100")))
}

func TestCreateTransaction_RejectsForeignAccount(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	intruder := uuid.Must(uuid.NewV4())
	acc := store.addAccount(owner, "100", true)

	action := &CreateTransaction{
		UserID:    intruder,
		AccountID: acc.ID,
		Type:      domain.TransactionTypeExpense,
		Amount:    decimal.RequireFromString("10"),
		Category:  "misc",
		Date:      time.Now(),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.transactions)
}

func TestCreateTransaction_RecurringRequiresInterval(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "100", true)

	action := &CreateTransaction{
		UserID:      userID,
		AccountID:   acc.ID,
		Type:        domain.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("10"),
		Category:    "rent",
		Date:        time.Now(),
		IsRecurring: true,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTransaction_RecurringSetsNextDate(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	acc := store.addAccount(userID, "100", true)

	interval := domain.IntervalMonthly
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	action := &CreateTransaction{
		UserID:            userID,
		AccountID:         acc.ID,
		Type:              domain.TransactionTypeExpense,
		Amount:            decimal.RequireFromString("1200"),
		Category:          "housing",
		Date:              date,
		IsRecurring:       true,
		RecurringInterval: &interval,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)

	created := store.transactions[action.Result]
	assert.True(t, created.IsRecurring)
	if assert.NotNil(t, created.NextRecurringDate) {
		assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), *created.NextRecurringDate)
	}
}
