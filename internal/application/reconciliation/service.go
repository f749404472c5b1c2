// Package reconciliation answers read-side questions about customers' bills,
// returned goods and stock intake.
package reconciliation

import (
	"context"
	"time"

	"github.com/branchstock/backend/internal/application/movement"
	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/branchstock/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// QueryService runs reconciliation queries. Reads take no locks.
type QueryService struct {
	sales   trade.SaleTransactionRepository
	returns trade.SalesReturnRepository
	stock   inventory.StockEntryRepository
	now     func() time.Time
}

// NewQueryService creates a QueryService
func NewQueryService(
	sales trade.SaleTransactionRepository,
	returns trade.SalesReturnRepository,
	stock inventory.StockEntryRepository,
) *QueryService {
	return &QueryService{sales: sales, returns: returns, stock: stock, now: time.Now}
}

// WithClock replaces the clock used to default open-ended date ranges
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

// GetBillNumbers lists the customer's invoice numbers, sales before returns,
// each invoice number once
func (s *QueryService) GetBillNumbers(ctx context.Context, customerID uuid.UUID) ([]BillNumberResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "bill_numbers")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrCustomerID, customerID.String())

	if customerID == uuid.Nil {
		err := shared.NewValidationError("Customer ID is required")
		telemetry.RecordError(span, err)
		return nil, err
	}

	sales, err := s.sales.FindByCustomer(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	returns, err := s.returns.FindByCustomer(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toBillNumberResponses(trade.MergeBillNumbers(sales, returns)), nil
}

// GetReturns lists every line the customer returned, oldest return first
func (s *QueryService) GetReturns(ctx context.Context, customerID uuid.UUID) ([]ReturnLineResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "returns")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrCustomerID, customerID.String())

	if customerID == uuid.Nil {
		err := shared.NewValidationError("Customer ID is required")
		telemetry.RecordError(span, err)
		return nil, err
	}

	views, err := s.returns.FindLineViews(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toReturnLineResponses(views), nil
}

// ListStockByDateRange lists stock entries dated within [from, to] in epoch
// seconds. A zero to means now.
func (s *QueryService) ListStockByDateRange(ctx context.Context, from, to int64) ([]movement.StockEntryResponse, error) {
	rng, err := shared.NewEpochRange(from, to, s.now())
	if err != nil {
		return nil, err
	}
	views, err := s.stock.FindByDateRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	return toStockResponses(views), nil
}

// ListStockByBranch lists the stock entries of one branch, or of every
// branch when req.All is set
func (s *QueryService) ListStockByBranch(ctx context.Context, req StockByBranchRequest) ([]movement.StockEntryResponse, error) {
	scope := inventory.AllBranches()
	if !req.All {
		var err error
		if scope, err = inventory.OnlyBranch(req.BranchID); err != nil {
			return nil, err
		}
	}
	views, err := s.stock.FindByBranch(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toStockResponses(views), nil
}

func toStockResponses(views []inventory.StockEntryView) []movement.StockEntryResponse {
	out := make([]movement.StockEntryResponse, len(views))
	for i := range views {
		out[i] = movement.ToStockEntryResponse(&views[i].StockEntry)
		out[i].ItemName = views[i].ItemName
	}
	return out
}
