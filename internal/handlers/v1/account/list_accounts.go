package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/logging"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	identity.Header
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"All of the user's accounts"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing a user's accounts.
type accountLister interface {
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error)
}

// ListAccountsHandler handles GET /v1/account/list.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/account/list",
		Summary:     "List accounts",
		Description: "Returns all of the user's accounts with transaction counts.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.AccountService.ListAccounts(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierrors.Map(err, "failed to list accounts")
	}

	resp := ListAccountsResponseBody{Accounts: make([]Account, len(accounts))}
	for i, acc := range accounts {
		resp.Accounts[i] = toAPI(acc)
	}

	return &ListAccountsOutput{Body: resp}, nil
}
