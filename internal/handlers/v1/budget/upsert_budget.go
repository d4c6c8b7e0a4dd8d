package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// UpsertBudgetBody is the request body for setting the budget.
type UpsertBudgetBody struct {
	Amount string `json:"amount" required:"true" doc:"Monthly spending ceiling, must not be negative"`
}

// UpsertBudgetInput is the Huma input for setting the budget.
type UpsertBudgetInput struct {
	identity.Header
	Body UpsertBudgetBody
}

// UpsertBudgetOutput is the Huma output for setting the budget.
type UpsertBudgetOutput struct {
	Body Budget
}

// actionProcessor runs an action atomically against storage.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// UpsertBudgetHandler handles PUT /v1/budget.
type UpsertBudgetHandler struct {
	Operator actionProcessor
}

// NewUpsertBudgetHandler creates a new UpsertBudgetHandler.
func NewUpsertBudgetHandler(op actionProcessor) *UpsertBudgetHandler {
	return &UpsertBudgetHandler{Operator: op}
}

// Register registers the upsert budget endpoint with the Huma API.
func (h *UpsertBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set budget",
		Description: "Creates or replaces the user's monthly budget.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpsertBudgetHandler) handle(ctx context.Context, input *UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	action := &actions.UpsertBudget{
		UserID: userID,
		Amount: amount,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to set budget")
	}

	return &UpsertBudgetOutput{
		Body: Budget{
			ID:     action.Result.ID.String(),
			Amount: action.Result.Amount.String(),
		},
	}, nil
}
