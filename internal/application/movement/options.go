package movement

import (
	"context"
	"time"

	"github.com/branchstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MetricsRecorder receives movement outcomes. Implemented by telemetry.MovementMetrics.
type MetricsRecorder interface {
	RecordMovement(ctx context.Context, kind, outcome string, duration time.Duration)
	RecordRetry(ctx context.Context, step string)
}

// Movement kinds used in logs, spans and metrics
const (
	KindAddStock      = "add_stock"
	KindCreateReturn  = "create_return"
	KindDeleteInvoice = "delete_invoice"
)

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRetryPolicy sets the retry policy for aggregate increments
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) {
		s.retryPolicy = p
	}
}

// WithStrictAmounts makes CreateReturn reject lines whose amount is not qty × price
func WithStrictAmounts(strict bool) Option {
	return func(s *Service) {
		s.strictAmounts = strict
	}
}

// WithIdempotency guards movements carrying an idempotency key
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) Option {
	return func(s *Service) {
		s.idempotency = store
		s.idempotencyCfg = cfg
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordMovement(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordRetry(context.Context, string) {}
