package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
)

// Handler exposes the cart endpoints. All routes require authentication;
// each caller only ever sees their own cart.
type Handler struct {
	service *Service
}

// NewHandler constructs a cart Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register binds the cart routes onto an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Put("/", h.putCart)
		r.Delete("/", h.clearCart)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	c, err := h.service.Get(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "cart not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	render.JSON(w, r, map[string]any{"cart": c})
}

type putCartRequest struct {
	Items []domain.OrderItem `json:"items"`
}

func (h *Handler) putCart(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var payload putCartRequest
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	c, err := h.service.Put(r.Context(), caller.ID, payload.Items)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	render.JSON(w, r, map[string]any{"cart": c})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := h.service.Clear(r.Context(), caller.ID); err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	render.NoContent(w, r)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"error": message})
}
