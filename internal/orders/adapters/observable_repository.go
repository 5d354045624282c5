package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/commercekit/storefront/internal/database"
	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/ports"
	"github.com/commercekit/storefront/internal/telemetry"
)

// ObservableRepository decorates an OrderRepository with spans and query
// duration metrics.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) observe(ctx context.Context, span string, operation string, attrs []attribute.KeyValue, fn func(ctx context.Context) error) error {
	ctx, s := telemetry.StartSpan(ctx, span)
	defer s.End()

	telemetry.AddSpanAttributes(s, attrs...)

	start := time.Now()
	err := fn(ctx)
	r.metrics.RecordQuery(ctx, operation, time.Since(start).Seconds())

	if err != nil {
		r.metrics.RecordError(ctx, operation)
		telemetry.RecordSpanError(s, err)
		return err
	}

	telemetry.SetSpanSuccess(s)
	return nil
}

func (r *ObservableRepository) Create(ctx context.Context, order domain.Order) error {
	return r.observe(ctx, "OrderRepository.Create", "create_order",
		[]attribute.KeyValue{attribute.String("order.id", order.ID)},
		func(ctx context.Context) error {
			return r.repo.Create(ctx, order)
		})
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order *domain.Order
	err := r.observe(ctx, "OrderRepository.GetByID", "get_order_by_id",
		[]attribute.KeyValue{attribute.String("order.id", id)},
		func(ctx context.Context) error {
			var err error
			order, err = r.repo.GetByID(ctx, id)
			return err
		})
	return order, err
}

func (r *ObservableRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.observe(ctx, "OrderRepository.ListByOwner", "list_orders_by_owner",
		[]attribute.KeyValue{attribute.String("order.owner", owner)},
		func(ctx context.Context) error {
			var err error
			orders, err = r.repo.ListByOwner(ctx, owner)
			return err
		})
	return orders, err
}

func (r *ObservableRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	}
	if filter.Status != nil {
		attrs = append(attrs, attribute.String("filter.status", string(*filter.Status)))
	}

	var orders []domain.Order
	err := r.observe(ctx, "OrderRepository.List", "list_orders", attrs,
		func(ctx context.Context) error {
			var err error
			orders, err = r.repo.List(ctx, filter)
			return err
		})
	return orders, err
}

func (r *ObservableRepository) Save(ctx context.Context, order domain.Order) error {
	return r.observe(ctx, "OrderRepository.Save", "save_order",
		[]attribute.KeyValue{
			attribute.String("order.id", order.ID),
			attribute.String("order.status", string(order.Status)),
		},
		func(ctx context.Context) error {
			return r.repo.Save(ctx, order)
		})
}

func (r *ObservableRepository) Summary(ctx context.Context) (*ports.Summary, error) {
	var summary *ports.Summary
	err := r.observe(ctx, "OrderRepository.Summary", "order_summary", nil,
		func(ctx context.Context) error {
			var err error
			summary, err = r.repo.Summary(ctx)
			return err
		})
	return summary, err
}
