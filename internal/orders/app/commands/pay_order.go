package commands

import (
	"context"
	"time"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// PayOrderCommand records a payment-gateway confirmation against an order.
// The confirmation payload is trusted as given; no gateway verification
// happens here.
type PayOrderCommand struct {
	Caller       identity.Principal
	OrderID      string
	Confirmation domain.PaymentResult
}

type PayOrderHandler interface {
	Handle(ctx context.Context, cmd PayOrderCommand) (*domain.Order, error)
}

type PayOrderCommandHandler struct {
	repo   ports.OrderRepository
	carts  ports.CartClearer
	events ports.EventBus
}

func NewPayOrderCommandHandler(repo ports.OrderRepository, carts ports.CartClearer, events ports.EventBus) *PayOrderCommandHandler {
	return &PayOrderCommandHandler{repo: repo, carts: carts, events: events}
}

func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (*domain.Order, error) {
	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	// Only the owner (or an admin) may settle an order.
	if order.Owner != cmd.Caller.ID && !cmd.Caller.IsAdmin {
		return nil, identity.ErrForbidden
	}

	// Re-paying an already-paid order overwrites the confirmation; the
	// overwrite is deliberate, matching the gateway-callback semantics.
	order.MarkPaid(cmd.Confirmation, time.Now().UTC())

	if err := h.repo.Save(ctx, *order); err != nil {
		return nil, err
	}

	if err := h.carts.Clear(ctx, order.Owner); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderPaid(ctx, order.ID); err != nil {
		return order, err
	}

	return order, nil
}
