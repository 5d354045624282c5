package commands

import (
	"context"
	"time"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// UpdateStatusCommand is the administrative fulfillment transition.
type UpdateStatusCommand struct {
	Caller  identity.Principal
	OrderID string
	Status  string
}

type UpdateStatusHandler interface {
	Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error)
}

type UpdateStatusCommandHandler struct {
	repo   ports.OrderRepository
	carts  ports.CartClearer
	events ports.EventBus
}

func NewUpdateStatusCommandHandler(repo ports.OrderRepository, carts ports.CartClearer, events ports.EventBus) *UpdateStatusCommandHandler {
	return &UpdateStatusCommandHandler{repo: repo, carts: carts, events: events}
}

func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	if !cmd.Caller.IsAdmin {
		return nil, identity.ErrForbidden
	}

	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	clearCart, err := order.TransitionTo(status, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := h.repo.Save(ctx, *order); err != nil {
		return nil, err
	}

	if clearCart {
		if err := h.carts.Clear(ctx, order.Owner); err != nil {
			return nil, err
		}
	}

	if err := h.events.PublishOrderStatusChanged(ctx, order.ID, string(status)); err != nil {
		return order, err
	}

	return order, nil
}
