package queries

import (
	"context"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// ListMyOrdersQuery returns every order placed by the caller.
type ListMyOrdersQuery struct {
	Caller identity.Principal
}

type ListMyOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListMyOrdersQueryHandler(repo ports.OrderRepository) *ListMyOrdersQueryHandler {
	return &ListMyOrdersQueryHandler{repo: repo}
}

func (h *ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]domain.Order, error) {
	return h.repo.ListByOwner(ctx, query.Caller.ID)
}

// ListAllOrdersQuery is the admin view over every order.
type ListAllOrdersQuery struct {
	Caller identity.Principal
	Filter ports.ListFilter
}

type ListAllOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListAllOrdersQueryHandler(repo ports.OrderRepository) *ListAllOrdersQueryHandler {
	return &ListAllOrdersQueryHandler{repo: repo}
}

func (h *ListAllOrdersQueryHandler) Handle(ctx context.Context, query ListAllOrdersQuery) ([]domain.Order, error) {
	if !query.Caller.IsAdmin {
		return nil, identity.ErrForbidden
	}
	return h.repo.List(ctx, query.Filter)
}
