package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID         string `json:"accountID" required:"true" doc:"Account UUID"`
	Type              string `json:"type" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction type"`
	Amount            string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Category          string `json:"category" required:"true" doc:"Category slug"`
	Description       string `json:"description,omitempty" doc:"Free-form description"`
	Date              string `json:"date,omitempty" doc:"RFC3339 transaction date, defaults to now"`
	IsRecurring       bool   `json:"isRecurring,omitempty" doc:"Create a recurring template"`
	RecurringInterval string `json:"recurringInterval,omitempty" enum:",DAILY,WEEKLY,MONTHLY,YEARLY" doc:"Required when isRecurring is true"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	identity.Header
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// actionProcessor runs an action atomically against storage.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction and adjusts the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	date := time.Now().UTC()
	if input.Body.Date != "" {
		date, err = time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	var interval *domain.RecurringInterval
	if input.Body.RecurringInterval != "" {
		iv := domain.RecurringInterval(input.Body.RecurringInterval)
		interval = &iv
	}

	action := &actions.CreateTransaction{
		UserID:            userID,
		AccountID:         accountID,
		Type:              domain.TransactionType(input.Body.Type),
		Amount:            amount,
		Category:          input.Body.Category,
		Description:       input.Body.Description,
		Date:              date,
		IsRecurring:       input.Body.IsRecurring,
		RecurringInterval: interval,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.Result.String()},
	}, nil
}
