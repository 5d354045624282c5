package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the lifecycle instruments shared by the command decorators.
type Metrics struct {
	operationsTotal   metric.Int64Counter
	operationDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.operationsTotal, err = meter.Int64Counter(
		"order_operations_total",
		metric.WithDescription("Total number of order lifecycle operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_operations_total counter: %w", err)
	}

	m.operationDuration, err = meter.Float64Histogram(
		"order_operation_duration_seconds",
		metric.WithDescription("Duration of order lifecycle operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_operation_duration histogram: %w", err)
	}

	return m, nil
}

// RecordOperation counts one lifecycle operation and records its duration.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, success bool, durationSeconds float64) {
	status := "success"
	if !success {
		status = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)

	m.operationsTotal.Add(ctx, 1, attrs)
	m.operationDuration.Record(ctx, durationSeconds, attrs)
}
