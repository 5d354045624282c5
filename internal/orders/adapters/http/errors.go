package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// writeDomainError maps application error kinds onto HTTP status codes.
// Anything unrecognized is treated as a storage-layer failure.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, identity.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, identity.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "unauthenticated")
	case errors.As(err, &validationErr):
		writeError(w, r, http.StatusBadRequest, validationErr.Reason)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"error": message})
}

func renderBody(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
