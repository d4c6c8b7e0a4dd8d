package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/handlers/v1/transaction"
	"github.com/finexa/finexa-server/internal/service"
)

// GetAccountInput is the Huma input for fetching one account.
type GetAccountInput struct {
	identity.Header
	ID string `path:"id" doc:"Account UUID"`
}

// GetAccountResponseBody is the response body for fetching one account.
type GetAccountResponseBody struct {
	Account      Account                   `json:"account" doc:"The account"`
	Transactions []transaction.Transaction `json:"transactions" doc:"The account's transactions, newest first"`
}

// GetAccountOutput is the Huma output for fetching one account.
type GetAccountOutput struct {
	Body GetAccountResponseBody
}

// accountGetter is the interface for fetching an account with its ledger.
type accountGetter interface {
	GetAccountWithTransactions(ctx context.Context, id, userID uuid.UUID) (*service.AccountDetail, error)
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get account",
		Description: "Returns one account and its full transaction history.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	detail, err := h.AccountService.GetAccountWithTransactions(ctx, accountID, userID)
	if err != nil {
		return nil, apierrors.Map(err, "failed to get account")
	}

	resp := GetAccountResponseBody{
		Account:      toAPI(detail.Account),
		Transactions: make([]transaction.Transaction, len(detail.Transactions)),
	}
	for i, tx := range detail.Transactions {
		resp.Transactions[i] = transaction.ToAPI(tx)
	}

	return &GetAccountOutput{Body: resp}, nil
}
