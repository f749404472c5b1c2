package movement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/branchstock/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Metric outcomes
const (
	outcomeCommitted = "committed"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Service is the movement processor. Every movement appends its ledger records
// and applies its aggregate deltas inside one TransactionScope.Execute call.
type Service struct {
	scope          TransactionScope
	logger         *zap.Logger
	retryPolicy    RetryPolicy
	strictAmounts  bool
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
	metrics        MetricsRecorder
	now            func() time.Time
}

// NewService creates a movement Service
func NewService(scope TransactionScope, opts ...Option) *Service {
	s := &Service{
		scope:       scope,
		logger:      zap.NewNop(),
		retryPolicy: DefaultRetryPolicy(),
		metrics:     noopMetrics{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("movement")
	return s
}

// AddStock records received goods and raises the item's qty and in_qty by the
// received quantity
func (s *Service) AddStock(ctx context.Context, req AddStockRequest) (*StockEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "movement", KindAddStock)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemID, req.ItemID.String(),
		telemetry.SpanAttrQuantity, req.Qty.String(),
	)
	start := s.now()

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	entry, err := inventory.NewStockEntry(inventory.StockEntryParams{
		BranchID:     req.BranchID,
		BranchName:   req.BranchName,
		BranchNumber: req.BranchNumber,
		ArticleID:    req.ArticleID,
		ArticleName:  req.ArticleName,
		ItemID:       req.ItemID,
		Size:         req.Size,
		Qty:          req.Qty,
		Purchase:     req.Purchase,
		InvoiceNo:    req.InvoiceNo,
		TruckNo:      req.TruckNo,
		Date:         date,
		Description:  req.Description,
	})
	if err != nil {
		return nil, s.fail(ctx, span, KindAddStock, start, err)
	}

	release, err := s.claim(ctx, KindAddStock, req.IdempotencyKey)
	if err != nil {
		return nil, s.fail(ctx, span, KindAddStock, start, err)
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Items().FindByID(ctx, entry.ItemID); err != nil {
			return err
		}
		if err := repos.StockEntries().Create(ctx, entry); err != nil {
			return err
		}
		return s.applyItemDelta(ctx, repos, entry.ItemID, entry.Delta())
	})
	if err != nil {
		release()
		return nil, s.fail(ctx, span, KindAddStock, start, err)
	}

	s.succeed(ctx, span, KindAddStock, start)
	s.logger.Info("Stock added",
		zap.String("stock_entry_id", entry.ID.String()),
		zap.String("item_id", entry.ItemID.String()),
		zap.String("qty", entry.Qty.String()),
		zap.String("total_amount", entry.TotalAmount.String()),
	)

	resp := ToStockEntryResponse(entry)
	return &resp, nil
}

// CreateReturn records returned goods: each line raises its item's qty and
// lowers out_qty, then the return total is credited to the customer
func (s *Service) CreateReturn(ctx context.Context, req CreateReturnRequest) (*SalesReturnResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "movement", KindCreateReturn)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, req.CustomerID.String(),
		telemetry.SpanAttrInvoiceNo, req.InvoiceNo,
		telemetry.SpanAttrItemsCount, len(req.Items),
	)
	start := s.now()

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	draft, err := trade.NewReturnDraft(req.CustomerID, date, req.InvoiceNo, req.Discount, req.Items, s.strictAmounts)
	if err != nil {
		return nil, s.fail(ctx, span, KindCreateReturn, start, err)
	}

	release, err := s.claim(ctx, KindCreateReturn, req.IdempotencyKey)
	if err != nil {
		return nil, s.fail(ctx, span, KindCreateReturn, start, err)
	}

	deltas := inventory.NewItemDeltaSet()
	for _, line := range draft.Lines {
		deltas.Add(line.ItemID, line.ItemDelta())
	}
	itemIDs := deltas.ItemIDs()

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Customers().FindByID(ctx, req.CustomerID); err != nil {
			return err
		}
		for _, id := range itemIDs {
			if _, err := repos.Items().FindByID(ctx, id); err != nil {
				return err
			}
		}

		if err := repos.ProductLines().CreateBatch(ctx, draft.Lines); err != nil {
			return err
		}
		for _, id := range itemIDs {
			d, _ := deltas.Get(id)
			if err := s.applyItemDelta(ctx, repos, id, d); err != nil {
				return err
			}
		}

		if err := repos.Returns().Create(ctx, draft.Return); err != nil {
			return err
		}
		return s.applyBalanceDelta(ctx, repos, req.CustomerID, draft.Return.BalanceDelta())
	})
	if err != nil {
		release()
		return nil, s.fail(ctx, span, KindCreateReturn, start, err)
	}

	s.succeed(ctx, span, KindCreateReturn, start)
	s.logger.Info("Return recorded",
		zap.String("return_id", draft.Return.ID.String()),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("invoice_no", draft.Return.InvoiceNo),
		zap.Int("lines", len(draft.Lines)),
		zap.String("total_amount", draft.Return.TotalAmount.String()),
	)

	return toSalesReturnResponse(draft), nil
}

// DeleteInvoice reverses and removes every return the customer filed under the
// invoice number. Counters are reversed before the records are deleted. No
// matching return is a successful no-op.
func (s *Service) DeleteInvoice(ctx context.Context, req DeleteInvoiceRequest) (*DeleteInvoiceResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "movement", KindDeleteInvoice)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, req.CustomerID.String(),
		telemetry.SpanAttrInvoiceNo, req.InvoiceNo,
	)
	start := s.now()

	invoiceNo := strings.TrimSpace(req.InvoiceNo)
	if req.CustomerID == uuid.Nil {
		return nil, s.fail(ctx, span, KindDeleteInvoice, start, shared.NewValidationError("Customer ID is required"))
	}
	if invoiceNo == "" {
		return nil, s.fail(ctx, span, KindDeleteInvoice, start, shared.NewValidationError("Invoice number is required"))
	}

	var result *DeleteInvoiceResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		res := &DeleteInvoiceResult{
			CustomerID:  req.CustomerID,
			InvoiceNo:   invoiceNo,
			TotalAmount: decimal.Zero,
			Discount:    decimal.Zero,
		}
		result = res

		returns, err := repos.Returns().FindByCustomerAndInvoice(ctx, req.CustomerID, invoiceNo)
		if err != nil {
			return err
		}
		if len(returns) == 0 {
			return nil
		}

		returnIDs := make([]uuid.UUID, len(returns))
		for i, r := range returns {
			returnIDs[i] = r.ID
			res.TotalAmount = res.TotalAmount.Add(r.TotalAmount)
			res.Discount = res.Discount.Add(r.Discount)
		}

		lines, err := repos.ProductLines().FindByReturnIDs(ctx, returnIDs)
		if err != nil {
			return err
		}
		deltas := inventory.NewItemDeltaSet()
		for _, line := range lines {
			deltas.Add(line.ItemID, line.ItemDelta().Inverse())
		}
		for _, id := range deltas.ItemIDs() {
			d, _ := deltas.Get(id)
			if err := s.applyItemDelta(ctx, repos, id, d); err != nil {
				return err
			}
		}
		reversal := partner.ReturnRecordedDelta(res.TotalAmount).Inverse()
		if err := s.applyBalanceDelta(ctx, repos, req.CustomerID, reversal); err != nil {
			return err
		}

		if _, err := repos.ProductLines().DeleteByReturnIDs(ctx, returnIDs); err != nil {
			return err
		}
		removed, err := repos.Returns().DeleteByIDs(ctx, returnIDs)
		if err != nil {
			return err
		}
		res.ReturnsRemoved = int(removed)
		res.LinesReversed = len(lines)
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, span, KindDeleteInvoice, start, err)
	}

	s.succeed(ctx, span, KindDeleteInvoice, start)
	s.logger.Info("Invoice returns deleted",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("invoice_no", invoiceNo),
		zap.Int("returns_removed", result.ReturnsRemoved),
		zap.String("total_amount", result.TotalAmount.String()),
	)
	return result, nil
}

func (s *Service) applyItemDelta(ctx context.Context, repos TransactionalRepositories, itemID uuid.UUID, d inventory.ItemDelta) error {
	return s.retryStep(ctx, "item_delta", func() error {
		return repos.Savepoint(ctx, "item_delta", func() error {
			return repos.Items().ApplyDelta(ctx, itemID, d)
		})
	})
}

func (s *Service) applyBalanceDelta(ctx context.Context, repos TransactionalRepositories, customerID uuid.UUID, d partner.BalanceDelta) error {
	return s.retryStep(ctx, "balance_delta", func() error {
		return repos.Savepoint(ctx, "balance_delta", func() error {
			return repos.Customers().ApplyBalanceDelta(ctx, customerID, d)
		})
	})
}

// retryStep retries op on transient store failures. Only aggregate increments
// go through here; ledger appends are never retried.
func (s *Service) retryStep(ctx context.Context, step string, op func() error) error {
	return s.retryPolicy.retry(ctx, op, func(err error, wait time.Duration) {
		s.metrics.RecordRetry(ctx, step)
		s.logger.Warn("Retrying aggregate update",
			zap.String("step", step),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}

// claim reserves an idempotency key. The returned release func gives the key
// back when the movement it guards does not commit.
func (s *Service) claim(ctx context.Context, kind, key string) (func(), error) {
	key = strings.TrimSpace(key)
	if key == "" || s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return func() {}, nil
	}
	scoped := kind + ":" + key
	claimed, err := s.idempotency.MarkProcessed(ctx, scoped, s.idempotencyCfg.TTL)
	if err != nil {
		return nil, shared.NewPersistenceError("claim idempotency key", err)
	}
	if !claimed {
		return nil, shared.NewConflictError("Request with this idempotency key was already processed")
	}
	return func() {
		if err := s.idempotency.Forget(context.WithoutCancel(ctx), scoped); err != nil {
			s.logger.Warn("Failed to release idempotency key", zap.String("key", scoped), zap.Error(err))
		}
	}, nil
}

func (s *Service) succeed(ctx context.Context, span trace.Span, kind string, start time.Time) {
	telemetry.SetOK(span)
	s.metrics.RecordMovement(ctx, kind, outcomeCommitted, s.now().Sub(start))
}

func (s *Service) fail(ctx context.Context, span trace.Span, kind string, start time.Time, err error) error {
	telemetry.RecordError(span, err)

	var de *shared.DomainError
	if errors.As(err, &de) {
		s.metrics.RecordMovement(ctx, kind, outcomeRejected, s.now().Sub(start))
		s.logger.Debug("Movement rejected", zap.String("kind", kind), zap.String("code", de.Code), zap.String("reason", de.Message))
		return err
	}

	s.metrics.RecordMovement(ctx, kind, outcomeFailed, s.now().Sub(start))
	s.logger.Error("Movement failed", zap.String("kind", kind), zap.Error(err))
	return shared.NewPersistenceError(kind, err)
}
