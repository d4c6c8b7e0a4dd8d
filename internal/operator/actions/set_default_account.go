package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/storage"
)

// SetDefaultAccount moves the default flag to the target account. The clear
// and the set run in one transaction so at no point do zero or two defaults
// exist. Re-setting the current default is a no-op success.
type SetDefaultAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (a *SetDefaultAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	target, err := writer.Accounts.FindByID(ctx, a.AccountID, a.UserID)
	if err != nil {
		return err
	}
	if target.IsDefault {
		return nil
	}

	if err = writer.Accounts.ClearDefault(ctx, a.UserID); err != nil {
		return err
	}
	return writer.Accounts.SetDefault(ctx, a.AccountID, a.UserID)
}
