package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/service"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID     string `json:"id" doc:"Budget UUID"`
	Amount string `json:"amount" doc:"Monthly spending ceiling"`
}

// GetBudgetInput is the Huma input for fetching the current budget.
type GetBudgetInput struct {
	identity.Header
}

// GetBudgetResponseBody is the response body for fetching the current budget.
type GetBudgetResponseBody struct {
	Budget          *Budget `json:"budget,omitempty" doc:"The user's budget, absent when none is set"`
	CurrentExpenses string  `json:"currentExpenses" doc:"Month-to-date expenses on the default account"`
	PercentageUsed  string  `json:"percentageUsed" doc:"Expenses as a percentage of the budget, 0 when no budget"`
}

// GetBudgetOutput is the Huma output for fetching the current budget.
type GetBudgetOutput struct {
	Body GetBudgetResponseBody
}

// budgetReader is the interface for reading budget usage.
type budgetReader interface {
	GetCurrentBudget(ctx context.Context, userID uuid.UUID, now time.Time) (*service.BudgetUsage, error)
}

// GetBudgetHandler handles GET /v1/budget.
type GetBudgetHandler struct {
	BudgetService budgetReader
}

// NewGetBudgetHandler creates a new GetBudgetHandler.
func NewGetBudgetHandler(svc budgetReader) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

// Register registers the get budget endpoint with the Huma API.
func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Get budget",
		Description: "Returns the user's budget and month-to-date spending on the default account.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, input *GetBudgetInput) (*GetBudgetOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}

	usage, err := h.BudgetService.GetCurrentBudget(ctx, userID, time.Now())
	if err != nil {
		return nil, apierrors.Map(err, "failed to get budget")
	}

	resp := GetBudgetResponseBody{
		CurrentExpenses: usage.CurrentExpenses.String(),
		PercentageUsed:  usage.PercentageUsed.String(),
	}
	if usage.Budget != nil {
		resp.Budget = &Budget{
			ID:     usage.Budget.ID.String(),
			Amount: usage.Budget.Amount.String(),
		}
	}

	return &GetBudgetOutput{Body: resp}, nil
}
