// Package apierrors translates domain errors into Huma HTTP errors so every
// handler maps the taxonomy the same way.
package apierrors

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/finexa/finexa-server/internal/domain"
)

// Map converts a domain error into a Huma error with the matching status.
// Unknown errors become 500s; transient storage errors become 503s so
// clients know a retry is worthwhile.
func Map(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.NewError(http.StatusForbidden, message, err)
	case errors.Is(err, domain.ErrValidation):
		return huma.NewError(http.StatusUnprocessableEntity, message, err)
	case errors.Is(err, domain.ErrTransient):
		return huma.NewError(http.StatusServiceUnavailable, message, err)
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
