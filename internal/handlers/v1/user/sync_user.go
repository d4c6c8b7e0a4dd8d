package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/operator/actions"
)

// SyncUserBody carries the caller's identity profile.
type SyncUserBody struct {
	Email string `json:"email" required:"true" format:"email" doc:"Email address for alerts and reports"`
	Name  string `json:"name,omitempty" doc:"Display name"`
}

// SyncUserInput is the Huma input for mirroring the caller's identity.
type SyncUserInput struct {
	identity.Header
	Body SyncUserBody
}

// SyncUserOutput is the Huma output for mirroring the caller's identity.
type SyncUserOutput struct {
	Status int
}

// actionProcessor runs an action atomically against storage.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// SyncUserHandler handles PUT /v1/user.
type SyncUserHandler struct {
	Operator actionProcessor
}

// NewSyncUserHandler creates a new SyncUserHandler.
func NewSyncUserHandler(op actionProcessor) *SyncUserHandler {
	return &SyncUserHandler{Operator: op}
}

// Register registers the user sync endpoint with the Huma API.
func (h *SyncUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-user",
		Method:      http.MethodPut,
		Path:        "/v1/user",
		Summary:     "Sync user",
		Description: "Mirrors the caller's identity record. The gateway calls this on sign-in; alert and report emails resolve addresses from it.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *SyncUserHandler) handle(ctx context.Context, input *SyncUserInput) (*SyncUserOutput, error) {
	userID, err := input.Resolve()
	if err != nil {
		return nil, err
	}

	action := &actions.SyncUser{
		UserID: userID,
		Email:  input.Body.Email,
		Name:   input.Body.Name,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, apierrors.Map(err, "failed to sync user")
	}

	return &SyncUserOutput{Status: http.StatusNoContent}, nil
}
