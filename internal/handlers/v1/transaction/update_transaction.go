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

// UpdateTransactionBody carries the full replacement state of a transaction.
type UpdateTransactionBody struct {
	AccountID         string `json:"accountID" required:"true" doc:"Account UUID, may differ to move the transaction"`
	Type              string `json:"type" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction type"`
	Amount            string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Category          string `json:"category" required:"true" doc:"Category slug"`
	Description       string `json:"description,omitempty" doc:"Free-form description"`
	Date              string `json:"date" required:"true" doc:"RFC3339 transaction date"`
	IsRecurring       bool   `json:"isRecurring,omitempty" doc:"Keep or make this a recurring template"`
	RecurringInterval string `json:"recurringInterval,omitempty" enum:",DAILY,WEEKLY,MONTHLY,YEARLY" doc:"Required when isRecurring is true"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	identity.Header
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction and reconciles affected account balances.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	date, err := time.Parse(time.RFC3339, input.Body.Date)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	var interval *domain.RecurringInterval
	if input.Body.RecurringInterval != "" {
		iv := domain.RecurringInterval(input.Body.RecurringInterval)
		interval = &iv
	}

	action := &actions.UpdateTransaction{
		UserID:            userID,
		TransactionID:     transactionID,
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
		return nil, apierrors.Map(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
