package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage"
	"github.com/finexa/finexa-server/internal/storage/account"
)

// CreateAccount creates an account for a user. A user's first account is
// forced default; an explicit default request clears the previous default in
// the same transaction so exactly one default survives.
type CreateAccount struct {
	UserID    uuid.UUID
	Name      string
	Type      domain.AccountType
	Balance   decimal.Decimal
	IsDefault bool

	// Result is the created account's ID, set on success.
	Result uuid.UUID
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", domain.ErrValidation, a.Type)
	}

	count, err := writer.Accounts.CountForUser(ctx, a.UserID)
	if err != nil {
		return err
	}

	isDefault := a.IsDefault || count == 0
	if isDefault && count > 0 {
		if err = writer.Accounts.ClearDefault(ctx, a.UserID); err != nil {
			return err
		}
	}

	id, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:    a.UserID,
		Name:      a.Name,
		Type:      a.Type,
		Balance:   a.Balance,
		IsDefault: isDefault,
	})
	if err != nil {
		return err
	}

	a.Result = id
	return nil
}
