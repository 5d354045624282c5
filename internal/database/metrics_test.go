package database

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordQuery(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordQuery(ctx, "save_order", 0.05)
	metrics.RecordQuery(ctx, "get_order_by_id", 0.01)
	metrics.RecordError(ctx, "save_order")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	foundDuration := false
	foundErrors := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "db_query_duration_seconds" {
				foundDuration = true
				hist, ok := m.Data.(metricdata.Histogram[float64])
				if !ok {
					t.Fatal("Expected Histogram[float64] data type")
				}
				if len(hist.DataPoints) != 2 {
					t.Errorf("Expected 2 data points, got %d", len(hist.DataPoints))
				}
			}
			if m.Name == "db_query_errors_total" {
				foundErrors = true
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatal("Expected Sum[int64] data type")
				}
				if len(sum.DataPoints) != 1 {
					t.Errorf("Expected 1 data point, got %d", len(sum.DataPoints))
				}
			}
		}
	}

	if !foundDuration {
		t.Error("db_query_duration_seconds metric not found")
	}
	if !foundErrors {
		t.Error("db_query_errors_total metric not found")
	}
}
