package app

import (
	"context"
	"log/slog"

	"github.com/commercekit/storefront/internal/identity"
	"github.com/commercekit/storefront/internal/orders/app/commands"
	"github.com/commercekit/storefront/internal/orders/app/queries"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/metrics"
	"github.com/commercekit/storefront/internal/orders/ports"
)

// Service bundles the order lifecycle use cases behind one facade.
type Service struct {
	idemStore     ports.IdempotencyStore
	createHandler commands.CreateOrderHandler
	payHandler    commands.PayOrderHandler
	statusHandler commands.UpdateStatusHandler
	getOrder      *queries.GetOrderQueryHandler
	listMine      *queries.ListMyOrdersQueryHandler
	listAll       *queries.ListAllOrdersQueryHandler
	summary       *queries.SummaryQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	carts ports.CartClearer,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		idemStore: idem,
		createHandler: commands.NewObservableCreateOrderHandler(
			commands.NewCreateOrderCommandHandler(repo, events), logger, metrics),
		payHandler: commands.NewObservablePayOrderHandler(
			commands.NewPayOrderCommandHandler(repo, carts, events), logger, metrics),
		statusHandler: commands.NewObservableUpdateStatusHandler(
			commands.NewUpdateStatusCommandHandler(repo, carts, events), logger, metrics),
		getOrder: queries.NewGetOrderQueryHandler(repo),
		listMine: queries.NewListMyOrdersQueryHandler(repo),
		listAll:  queries.NewListAllOrdersQueryHandler(repo),
		summary:  queries.NewSummaryQueryHandler(repo),
	}
}

// CreateOrder places a new order owned by the caller.
func (s *Service) CreateOrder(ctx context.Context, cmd commands.CreateOrderCommand) (*domain.Order, error) {
	return s.createHandler.Handle(ctx, cmd)
}

// PayOrder records a payment confirmation and clears the owner's cart.
func (s *Service) PayOrder(ctx context.Context, cmd commands.PayOrderCommand) (*domain.Order, error) {
	return s.payHandler.Handle(ctx, cmd)
}

// UpdateOrderStatus performs the administrative fulfillment transition.
func (s *Service) UpdateOrderStatus(ctx context.Context, cmd commands.UpdateStatusCommand) (*domain.Order, error) {
	return s.statusHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order visible to the caller.
func (s *Service) GetOrder(ctx context.Context, caller identity.Principal, id string) (*domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{Caller: caller, OrderID: id})
}

// ListMyOrders returns the caller's orders.
func (s *Service) ListMyOrders(ctx context.Context, caller identity.Principal) ([]domain.Order, error) {
	return s.listMine.Handle(ctx, queries.ListMyOrdersQuery{Caller: caller})
}

// ListAllOrders returns all orders for an admin caller.
func (s *Service) ListAllOrders(ctx context.Context, caller identity.Principal, filter ports.ListFilter) ([]domain.Order, error) {
	return s.listAll.Handle(ctx, queries.ListAllOrdersQuery{Caller: caller, Filter: filter})
}

// OrderSummary returns the admin aggregate report.
func (s *Service) OrderSummary(ctx context.Context, caller identity.Principal) (*ports.Summary, error) {
	return s.summary.Handle(ctx, queries.SummaryQuery{Caller: caller})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
