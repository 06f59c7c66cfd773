package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("operation", "create"),
		attribute.String("invoice_id", "456"),
		attribute.String("outcome", "ok"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "operation" && attrs[1].Key != "operation" {
		t.Fatalf("expected operation to be retained")
	}
	if attrs[0].Key != "outcome" && attrs[1].Key != "outcome" {
		t.Fatalf("expected outcome to be retained")
	}
}

func TestRecordInvoiceOperation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(Config{ServiceName: "fbrinvoice"}, provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordInvoiceOperation(ctx, "create", "ok")
	m.RecordInvoiceOperation(ctx, "create", "ok")
	m.RecordDocstoreOperation(ctx, "sql", "insert", "ok", 3*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "fbrinvoice_invoice_operations_total" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordInvoiceOperation(context.Background(), "get", "ok")
	m.RecordDocstoreOperation(context.Background(), "redis", "get", "ok", time.Millisecond)
}
