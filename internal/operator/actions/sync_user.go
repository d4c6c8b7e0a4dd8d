package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage"
)

// SyncUser mirrors the caller's identity record. The gateway invokes it on
// sign-in so scheduled jobs can resolve email addresses, and the accounts
// and budgets foreign keys have a row to reference.
type SyncUser struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

func (a *SyncUser) validate() error {
	if a.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return nil
}

func (a *SyncUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.validate(); err != nil {
		return err
	}

	return writer.Users.Upsert(ctx, &domain.User{
		ID:    a.UserID,
		Email: a.Email,
		Name:  a.Name,
	})
}
