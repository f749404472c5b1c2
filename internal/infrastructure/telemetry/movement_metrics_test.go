package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/branchstock/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMovementMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	m, err := telemetry.NewMovementMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordMovement(ctx, "add_stock", "committed", 10*time.Millisecond)
	m.RecordMovement(ctx, "add_stock", "committed", 20*time.Millisecond)
	m.RecordMovement(ctx, "create_return", "rejected", time.Millisecond)
	m.RecordRetry(ctx, "balance_delta")

	got := collect(t, reader)

	movements, ok := got["stock_movements_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range movements.DataPoints {
		kind, _ := dp.Attributes.Value(attribute.Key("movement.kind"))
		outcome, _ := dp.Attributes.Value(attribute.Key("movement.outcome"))
		counts[kind.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"add_stock/committed": 2, "create_return/rejected": 1}, counts)

	retries, ok := got["stock_movement_retries_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, retries.DataPoints, 1)
	assert.Equal(t, int64(1), retries.DataPoints[0].Value)

	hist, ok := got["stock_movement_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	assert.Equal(t, uint64(3), total)
}

func TestNewMovementMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewMovementMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestRegisterPoolMetrics(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(1)

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	reg, err := telemetry.RegisterPoolMetrics(meter, sqlDB)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	got := collect(t, reader)
	gauge, ok := got["db_pool_connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)

	byState := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		state, _ := dp.Attributes.Value(attribute.Key("db.pool.state"))
		byState[state.AsString()] = dp.Value
	}
	assert.Equal(t, int64(1), byState["max"])
	assert.Contains(t, byState, "idle")
	assert.Contains(t, byState, "in_use")
}
