package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrMovementKind = attribute.Key("movement.kind")
	AttrOutcome      = attribute.Key("movement.outcome")
	AttrRetryStep    = attribute.Key("movement.retry_step")
	AttrPoolState    = attribute.Key("db.pool.state")
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// MovementMetrics counts inventory movements by kind and outcome and records
// their latency. It satisfies movement.MetricsRecorder.
type MovementMetrics struct {
	movements metric.Int64Counter
	retries   metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewMovementMetrics creates the movement instruments on meter
func NewMovementMetrics(meter metric.Meter) (*MovementMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	movements, err := meter.Int64Counter("stock_movements_total",
		metric.WithDescription("Inventory movements processed"),
		metric.WithUnit("{movement}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create movements counter: %w", err)
	}
	retries, err := meter.Int64Counter("stock_movement_retries_total",
		metric.WithDescription("Aggregate updates re-attempted after a transient failure"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retries counter: %w", err)
	}
	duration, err := meter.Float64Histogram("stock_movement_duration_seconds",
		metric.WithDescription("Time to process an inventory movement"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	return &MovementMetrics{movements: movements, retries: retries, duration: duration}, nil
}

// RecordMovement counts one finished movement
func (m *MovementMetrics) RecordMovement(ctx context.Context, kind, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(AttrMovementKind.String(kind), AttrOutcome.String(outcome))
	m.movements.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordRetry counts one retried aggregate update
func (m *MovementMetrics) RecordRetry(ctx context.Context, step string) {
	m.retries.Add(ctx, 1, metric.WithAttributes(AttrRetryStep.String(step)))
}

// RegisterPoolMetrics exports db's connection pool state as observable gauges
func RegisterPoolMetrics(meter metric.Meter, db *sql.DB) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return nil, err
	}
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := db.Stats()
		o.ObserveInt64(conns, int64(s.InUse), metric.WithAttributes(AttrPoolState.String("in_use")))
		o.ObserveInt64(conns, int64(s.Idle), metric.WithAttributes(AttrPoolState.String("idle")))
		o.ObserveInt64(conns, int64(s.MaxOpenConnections), metric.WithAttributes(AttrPoolState.String("max")))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, conns, waits)
}
