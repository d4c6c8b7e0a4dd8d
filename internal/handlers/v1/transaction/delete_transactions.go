package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// DeleteTransactionsBody is the request body for bulk deletion.
type DeleteTransactionsBody struct {
	TransactionIDs []string `json:"transactionIDs" minItems:"1" doc:"Transaction UUIDs to delete"`
}

// DeleteTransactionsInput is the Huma input for bulk deletion.
type DeleteTransactionsInput struct {
	identity.Header
	Body DeleteTransactionsBody
}

// DeleteTransactionsResponse is the response body for bulk deletion.
type DeleteTransactionsResponse struct {
	Deleted int64 `json:"deleted" doc:"Number of transactions removed"`
}

// DeleteTransactionsOutput is the Huma output for bulk deletion.
type DeleteTransactionsOutput struct {
	Body DeleteTransactionsResponse
}

// DeleteTransactionsHandler handles POST /v1/transaction/delete.
type DeleteTransactionsHandler struct {
	Operator actionProcessor
}

// NewDeleteTransactionsHandler creates a new DeleteTransactionsHandler.
func NewDeleteTransactionsHandler(op actionProcessor) *DeleteTransactionsHandler {
	return &DeleteTransactionsHandler{Operator: op}
}

// Register registers the bulk delete endpoint with the Huma API.
func (h *DeleteTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/delete",
		Summary:     "Delete transactions",
		Description: "Deletes a batch of transactions and reconciles every touched account in one database transaction.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionsHandler) handle(ctx context.Context, input *DeleteTransactionsInput) (*DeleteTransactionsOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(input.Body.TransactionIDs))
	for i, raw := range input.Body.TransactionIDs {
		ids[i], err = uuid.FromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
		}
	}

	action := &actions.DeleteTransactions{
		UserID:         userID,
		TransactionIDs: ids,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to delete transactions")
	}

	return &DeleteTransactionsOutput{
		Body: DeleteTransactionsResponse{Deleted: action.Deleted},
	}, nil
}
