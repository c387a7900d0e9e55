package http

import (
	"errors"
	"log/slog"
	"net/http"

	"campusswap/internal/authz"
	"campusswap/internal/domain"
	"campusswap/internal/httpx"
	obsmw "campusswap/internal/observability/middleware"
)

const (
	msgCredentialsRequired = "Email and password are required."
	msgEmailInUse          = "Email already in use."
	msgInvalidCredentials  = "Invalid email or password."
	msgItemFieldsRequired  = "Title, description, price and category are required."
	msgItemNotFound        = "Item not found."
	msgCannotEdit          = "Item not found or you do not have permission to edit it."
	msgCannotDelete        = "Item not found or you do not have permission to delete it."
	msgItemDeleted         = "Item deleted successfully!"
	msgBadBody             = "Invalid request body."
	msgInternal            = "Internal server error."
)

// messages picks the user-facing text for the errors a route can produce.
type messages struct {
	validation string
	notFound   string
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error, m messages) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, m.validation)
	case errors.Is(err, domain.ErrConflict):
		httpx.Error(w, http.StatusConflict, msgEmailInUse)
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrForbidden):
		authz.WriteError(w, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		httpx.Error(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotFoundOrForbidden):
		httpx.Error(w, http.StatusNotFound, m.notFound)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()),
			"trace_id", obsmw.TraceIDFromContext(r.Context()),
		)
		httpx.Error(w, http.StatusInternalServerError, msgInternal)
	}
}
