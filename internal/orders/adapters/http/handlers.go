package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/app"
	"github.com/commercekit/storefront/internal/orders/app/commands"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds order routes onto an authenticated router. Admin-only
// routes carry the RequireAdmin middleware on top; the application layer
// enforces the role again so non-HTTP callers get the same guarantees.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/mine", h.listMyOrders)

		r.Group(func(r chi.Router) {
			r.Use(identity.RequireAdmin)
			r.Get("/", h.listAllOrders)
			r.Get("/summary", h.orderSummary)
			r.Put("/{orderID}/status", h.updateOrderStatus)
		})

		r.Get("/{orderID}", h.getOrder)
		r.Post("/{orderID}/pay", h.payOrder)
	})
}

type createOrderRequest struct {
	Items           []domain.OrderItem     `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	ItemsPrice      float64                `json:"items_price"`
	ShippingPrice   float64                `json:"shipping_price"`
	TaxPrice        float64                `json:"tax_price"`
	TotalPrice      float64                `json:"total_price"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := identity.FromContext(ctx)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		stored, err := h.service.GetIdempotentResponse(ctx, idemKey)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload createOrderRequest
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(ctx, commands.CreateOrderCommand{
		Caller:          caller,
		Items:           payload.Items,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   domain.PaymentMethod(payload.PaymentMethod),
		ItemsPrice:      payload.ItemsPrice,
		ShippingPrice:   payload.ShippingPrice,
		TaxPrice:        payload.TaxPrice,
		TotalPrice:      payload.TotalPrice,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if idemKey != "" {
		body, err := renderBody(map[string]any{"order": order})
		if err == nil {
			_ = h.service.SaveIdempotentResponse(ctx, idemKey, ports.StoredResponse{
				StatusCode: http.StatusCreated,
				Body:       body,
				OrderID:    order.ID,
			})
		}
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{"order": order})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	order, err := h.service.GetOrder(r.Context(), caller, chi.URLParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"order": order})
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	orders, err := h.service.ListMyOrders(r.Context(), caller)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"orders": orders})
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	filter := ports.ListFilter{}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, err := domain.ParseStatus(statusParam)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.Status = &status
	}
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	orders, err := h.service.ListAllOrders(r.Context(), caller, filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"orders": orders})
}

func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var confirmation domain.PaymentResult
	if err := render.DecodeJSON(r.Body, &confirmation); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.PayOrder(r.Context(), commands.PayOrderCommand{
		Caller:       caller,
		OrderID:      chi.URLParam(r, "orderID"),
		Confirmation: confirmation,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"order": order})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var payload updateStatusRequest
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), commands.UpdateStatusCommand{
		Caller:  caller,
		OrderID: chi.URLParam(r, "orderID"),
		Status:  payload.Status,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"order": order})
}

func (h *Handler) orderSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	summary, err := h.service.OrderSummary(r.Context(), caller)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"summary": summary})
}
