package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/commercekit/storefront/internal/orders/domain"
	"github.com/commercekit/storefront/internal/orders/metrics"
	"github.com/commercekit/storefront/internal/telemetry"
)

// ObservableCreateOrderHandler wraps order creation with tracing, logging,
// and metrics.
type ObservableCreateOrderHandler struct {
	handler CreateOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreateOrderHandler(handler CreateOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreateOrderHandler {
	return &ObservableCreateOrderHandler{handler: handler, logger: logger, metrics: metrics}
}

func (o *ObservableCreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		o.metrics.RecordOperation(ctx, "create_order", success, time.Since(start).Seconds())
	}()

	o.logger.InfoContext(ctx, "creating order",
		"owner", cmd.Caller.ID,
		"payment_method", cmd.PaymentMethod,
		"total_price", cmd.TotalPrice,
	)

	order, err := o.handler.Handle(ctx, cmd)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order", "error", err, "owner", cmd.Caller.ID)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.payment_method", string(order.PaymentMethod)),
	)

	success = true
	o.logger.InfoContext(ctx, "order created", "order_id", order.ID, "owner", order.Owner)
	return order, nil
}

// ObservablePayOrderHandler wraps payment confirmation.
type ObservablePayOrderHandler struct {
	handler PayOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservablePayOrderHandler(handler PayOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservablePayOrderHandler {
	return &ObservablePayOrderHandler{handler: handler, logger: logger, metrics: metrics}
}

func (o *ObservablePayOrderHandler) Handle(ctx context.Context, cmd PayOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "PayOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		o.metrics.RecordOperation(ctx, "pay_order", success, time.Since(start).Seconds())
	}()

	order, err := o.handler.Handle(ctx, cmd)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to pay order", "error", err, "order_id", cmd.OrderID)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.String("order.id", order.ID))

	success = true
	o.logger.InfoContext(ctx, "order paid",
		"order_id", order.ID,
		"external_id", cmd.Confirmation.ExternalID,
	)
	return order, nil
}

// ObservableUpdateStatusHandler wraps the administrative status transition.
type ObservableUpdateStatusHandler struct {
	handler UpdateStatusHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableUpdateStatusHandler(handler UpdateStatusHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableUpdateStatusHandler {
	return &ObservableUpdateStatusHandler{handler: handler, logger: logger, metrics: metrics}
}

func (o *ObservableUpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "UpdateStatusCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		o.metrics.RecordOperation(ctx, "update_status", success, time.Since(start).Seconds())
	}()

	order, err := o.handler.Handle(ctx, cmd)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to update order status",
			"error", err,
			"order_id", cmd.OrderID,
			"status", cmd.Status,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.status", string(order.Status)),
	)

	success = true
	o.logger.InfoContext(ctx, "order status updated", "order_id", order.ID, "status", order.Status)
	return order, nil
}
