package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name      string `json:"name" minLength:"1" doc:"Account name"`
	Type      string `json:"type" enum:"CURRENT,SAVINGS" doc:"Account type"`
	Balance   string `json:"balance,omitempty" doc:"Initial balance (e.g. '0' or '1234.56'), defaults to 0"`
	IsDefault bool   `json:"isDefault,omitempty" doc:"Make this the default account"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	identity.Header
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// actionProcessor runs an action atomically against storage.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator actionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create account",
		Description: "Creates a new account. The user's first account becomes the default.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if input.Body.Balance != "" {
		balance, err = decimal.NewFromString(input.Body.Balance)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid balance", err)
		}
	}

	action := &actions.CreateAccount{
		UserID:    userID,
		Name:      input.Body.Name,
		Type:      domain.AccountType(input.Body.Type),
		Balance:   balance,
		IsDefault: input.Body.IsDefault,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to create account")
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: action.Result.String()},
	}, nil
}
