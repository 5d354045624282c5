package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// CreateOrderCommand captures a checkout submission. Prices are computed by
// the caller and stored as given; the owner is never taken from the payload.
type CreateOrderCommand struct {
	Caller          identity.Principal
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	ItemsPrice      float64
	ShippingPrice   float64
	TaxPrice        float64
	TotalPrice      float64
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type CreateOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewCreateOrderCommandHandler(repo ports.OrderRepository, events ports.EventBus) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{repo: repo, events: events}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	now := time.Now().UTC()

	order := domain.Order{
		ID:              uuid.NewString(),
		Owner:           cmd.Caller.ID,
		Items:           cmd.Items,
		ShippingAddress: cmd.ShippingAddress,
		PaymentMethod:   cmd.PaymentMethod,
		ItemsPrice:      cmd.ItemsPrice,
		ShippingPrice:   cmd.ShippingPrice,
		TaxPrice:        cmd.TaxPrice,
		TotalPrice:      cmd.TotalPrice,
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		return &order, err
	}

	return &order, nil
}
