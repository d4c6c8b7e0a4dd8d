package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finexa/finexa-server/internal/domain"
)

func TestCreateAccount_FirstAccountBecomesDefault(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())

	action := &CreateAccount{
		UserID:  userID,
		Name:    "Checking",
		Type:    domain.AccountTypeCurrent,
		Balance: decimal.RequireFromString("100"),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, store.accounts[action.Result].IsDefault)
}

func TestCreateAccount_ExplicitDefaultClearsPrevious(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	first := store.addAccount(userID, "100", true)

	action := &CreateAccount{
		UserID:    userID,
		Name:      "Savings",
		Type:      domain.AccountTypeSavings,
		Balance:   decimal.Zero,
		IsDefault: true,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.False(t, store.accounts[first.ID].IsDefault)
	assert.True(t, store.accounts[action.Result].IsDefault)
}

func TestCreateAccount_SecondAccountNotDefaultByDefault(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	first := store.addAccount(userID, "100", true)

	action := &CreateAccount{
		UserID: userID,
		Name:   "Savings",
		Type:   domain.AccountTypeSavings,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, store.accounts[first.ID].IsDefault)
	assert.False(t, store.accounts[action.Result].IsDefault)
}

func TestCreateAccount_RejectsUnknownType(t *testing.T) {
	store := newFakeStore()

	action := &CreateAccount{
		UserID: uuid.Must(uuid.NewV4()),
		Name:   "Mystery",
		Type:   domain.AccountType("CRYPTO"),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.accounts)
}

func TestSetDefaultAccount_SwitchesDefault(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())
	first := store.addAccount(userID, "100", true)
	second := store.addAccount(userID, "50", false)

	action := &SetDefaultAccount{
		UserID:    userID,
		AccountID: second.ID,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.False(t, store.accounts[first.ID].IsDefault)
	assert.True(t, store.accounts[second.ID].IsDefault)
}

func TestSetDefaultAccount_RejectsForeignAccount(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	intruder := uuid.Must(uuid.NewV4())
	acc := store.addAccount(owner, "100", true)

	action := &SetDefaultAccount{
		UserID:    intruder,
		AccountID: acc.ID,
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, store.accounts[acc.ID].IsDefault)
}

func TestUpsertBudget_CreatesThenReplaces(t *testing.T) {
	store := newFakeStore()
	userID := uuid.Must(uuid.NewV4())

	create := &UpsertBudget{UserID: userID, Amount: decimal.RequireFromString("500")}
	err := create.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.True(t, create.Result.Amount.Equal(decimal.RequireFromString("500")))

	replace := &UpsertBudget{UserID: userID, Amount: decimal.RequireFromString("750")}
	err = replace.Perform(context.Background(), store.writer())
	assert.NoError(t, err)
	assert.Equal(t, create.Result.ID, replace.Result.ID)
	assert.True(t, replace.Result.Amount.Equal(decimal.RequireFromString("750")))
}

func TestUpsertBudget_RejectsNegativeAmount(t *testing.T) {
	store := newFakeStore()

	action := &UpsertBudget{
		UserID: uuid.Must(uuid.NewV4()),
		Amount: decimal.RequireFromString("-1"),
	}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.budgets)
}
