// Package identity resolves the calling user from request headers. The
// upstream gateway authenticates the session and forwards the user's UUID
// in X-User-ID; endpoints trust the header and scope every query with it.
package identity

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// Header is the huma input struct handlers embed to receive the caller.
type Header struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID forwarded by the gateway"`
}

// Resolve parses the forwarded user ID, rejecting malformed values.
func (h Header) Resolve() (uuid.UUID, error) {
	userID, err := uuid.FromString(h.UserID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "invalid X-User-ID header", err)
	}
	return userID, nil
}
