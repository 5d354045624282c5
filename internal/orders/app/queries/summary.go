package queries

import (
	"context"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// SummaryQuery is the admin aggregate report over all orders.
type SummaryQuery struct {
	Caller identity.Principal
}

type SummaryQueryHandler struct {
	repo ports.OrderRepository
}

func NewSummaryQueryHandler(repo ports.OrderRepository) *SummaryQueryHandler {
	return &SummaryQueryHandler{repo: repo}
}

func (h *SummaryQueryHandler) Handle(ctx context.Context, query SummaryQuery) (*ports.Summary, error) {
	if !query.Caller.IsAdmin {
		return nil, identity.ErrForbidden
	}
	return h.repo.Summary(ctx)
}
