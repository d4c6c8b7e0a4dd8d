package actions

import (
	"context"

	"github.com/finexa/finexa-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
