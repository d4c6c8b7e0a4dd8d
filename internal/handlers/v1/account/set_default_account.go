package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// SetDefaultAccountInput is the Huma input for switching the default account.
type SetDefaultAccountInput struct {
	identity.Header
	ID string `path:"id" doc:"Account UUID to make the default"`
}

// SetDefaultAccountOutput is the Huma output for switching the default account.
type SetDefaultAccountOutput struct {
	Status int
}

// SetDefaultAccountHandler handles PUT /v1/account/{id}/default.
type SetDefaultAccountHandler struct {
	Operator actionProcessor
}

// NewSetDefaultAccountHandler creates a new SetDefaultAccountHandler.
func NewSetDefaultAccountHandler(op actionProcessor) *SetDefaultAccountHandler {
	return &SetDefaultAccountHandler{Operator: op}
}

// Register registers the set default account endpoint with the Huma API.
func (h *SetDefaultAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-default-account",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}/default",
		Summary:     "Set default account",
		Description: "Makes the account the user's default, clearing the previous one.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SetDefaultAccountHandler) handle(ctx context.Context, input *SetDefaultAccountInput) (*SetDefaultAccountOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	action := &actions.SetDefaultAccount{
		UserID:    userID,
		AccountID: accountID,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to set default account")
	}

	return &SetDefaultAccountOutput{Status: http.StatusNoContent}, nil
}
