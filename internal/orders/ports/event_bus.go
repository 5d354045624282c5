package ports

import "context"

// EventBus publishes order lifecycle events for downstream consumers.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishOrderPaid(ctx context.Context, orderID string) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, status string) error
}
