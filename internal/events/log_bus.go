// Package events carries order lifecycle notifications. The log publisher
// stands in until a real broker is wired.
package events

import (
	"context"
	"log/slog"
)

// LogEventBus records events to the structured log without sending them anywhere.
type LogEventBus struct {
	logger *slog.Logger
}

// NewLogEventBus returns a log-only event publisher.
func NewLogEventBus(logger *slog.Logger) *LogEventBus {
	return &LogEventBus{logger: logger}
}

func (b *LogEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	b.logger.DebugContext(ctx, "event::order_created", "order_id", orderID)
	return nil
}

func (b *LogEventBus) PublishOrderPaid(ctx context.Context, orderID string) error {
	b.logger.DebugContext(ctx, "event::order_paid", "order_id", orderID)
	return nil
}

func (b *LogEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, status string) error {
	b.logger.DebugContext(ctx, "event::order_status_changed", "order_id", orderID, "status", status)
	return nil
}
