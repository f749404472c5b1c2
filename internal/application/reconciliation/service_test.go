package reconciliation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/branchstock/backend/internal/application/movement"
	"github.com/branchstock/backend/internal/application/reconciliation"
	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/branchstock/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockSaleRepo is a mock implementation of trade.SaleTransactionRepository
type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) Create(ctx context.Context, tx *trade.SaleTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockSaleRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]trade.SaleTransaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SaleTransaction), args.Error(1)
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, persistence.AutoMigrate(db))
	return db
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sale(invoiceNo string, lines int) trade.SaleTransaction {
	tx := trade.SaleTransaction{BaseEntity: shared.NewBaseEntity(), InvoiceNo: invoiceNo}
	for i := 0; i < lines; i++ {
		tx.Lines = append(tx.Lines, trade.SaleLine{BaseEntity: shared.NewBaseEntity()})
	}
	return tx
}

func TestQueryService_GetBillNumbers(t *testing.T) {
	ctx := context.Background()

	t.Run("sales first, returns after, duplicates dropped", func(t *testing.T) {
		db := newDB(t)
		customerID := uuid.New()
		sales := new(MockSaleRepo)
		sales.On("FindByCustomer", mock.Anything, customerID).
			Return([]trade.SaleTransaction{sale("S-1", 2), sale("S-EMPTY", 0), sale("SHARED", 1)}, nil)

		returns := persistence.NewGormSalesReturnRepository(db)
		for _, no := range []string{"R-1", "SHARED"} {
			sr := &trade.SalesReturn{BaseEntity: shared.NewBaseEntity(), CustomerID: customerID, InvoiceNo: no, Date: 1}
			require.NoError(t, returns.Create(ctx, sr))
			require.NoError(t, persistence.NewGormProductLineRepository(db).CreateBatch(ctx, []trade.ProductLine{{
				BaseEntity: shared.NewBaseEntity(), ReturnID: sr.ID, ItemID: uuid.New(),
				Qty: d(1), Price: d(1), Purchase: d(1), Amount: d(1),
			}}))
		}

		svc := reconciliation.NewQueryService(sales, returns, persistence.NewGormStockEntryRepository(db))
		got, err := svc.GetBillNumbers(ctx, customerID)

		require.NoError(t, err)
		assert.Equal(t, []reconciliation.BillNumberResponse{
			{InvoiceNo: "S-1", Kind: trade.BillKindSale},
			{InvoiceNo: "SHARED", Kind: trade.BillKindSale},
			{InvoiceNo: "R-1", Kind: trade.BillKindReturn},
		}, got)
		sales.AssertExpectations(t)
	})

	t.Run("unknown customer has no bills", func(t *testing.T) {
		db := newDB(t)
		svc := reconciliation.NewQueryService(
			persistence.NewGormSaleTransactionRepository(db),
			persistence.NewGormSalesReturnRepository(db),
			persistence.NewGormStockEntryRepository(db),
		)
		got, err := svc.GetBillNumbers(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		db := newDB(t)
		customerID := uuid.New()
		sales := new(MockSaleRepo)
		sales.On("FindByCustomer", mock.Anything, customerID).
			Return(nil, shared.NewPersistenceError("find sales", errors.New("connection reset")))

		svc := reconciliation.NewQueryService(sales, persistence.NewGormSalesReturnRepository(db), persistence.NewGormStockEntryRepository(db))
		_, err := svc.GetBillNumbers(ctx, customerID)
		assert.True(t, errors.Is(err, shared.ErrPersistence))
	})

	t.Run("customer id is required", func(t *testing.T) {
		svc := reconciliation.NewQueryService(new(MockSaleRepo), nil, nil)
		_, err := svc.GetBillNumbers(ctx, uuid.Nil)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

type fixture struct {
	db       *gorm.DB
	movement *movement.Service
	query    *reconciliation.QueryService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	db := newDB(t)
	return &fixture{
		db:       db,
		movement: movement.NewService(persistence.NewGormTransactionScope(db)),
		query: reconciliation.NewQueryService(
			persistence.NewGormSaleTransactionRepository(db),
			persistence.NewGormSalesReturnRepository(db),
			persistence.NewGormStockEntryRepository(db),
		).WithClock(func() time.Time { return now }),
	}
}

func (f *fixture) item(t *testing.T, name string, branchID uuid.UUID) *inventory.Item {
	item, err := inventory.NewItem(name, "L", uuid.New(), branchID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormItemRepository(f.db).Create(context.Background(), item))
	return item
}

func (f *fixture) stockIn(t *testing.T, item *inventory.Item, at int64) {
	_, err := f.movement.AddStock(context.Background(), movement.AddStockRequest{
		BranchID:    item.BranchID,
		BranchName:  "Branch",
		ArticleID:   item.ArticleID,
		ArticleName: item.Name,
		ItemID:      item.ID,
		Size:        item.Size,
		Qty:         d(1),
		Purchase:    d(10),
		Date:        time.Unix(at, 0),
	})
	require.NoError(t, err)
}

func TestQueryService_GetReturns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Now())
	shirt := f.item(t, "Shirt", uuid.New())

	c, err := partner.NewCustomer(partner.CustomerProfile{Name: "Ayesha", Email: "ayesha@example.com"})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(f.db).Create(ctx, c))

	for i, no := range []string{"INV-1", "INV-2"} {
		_, err := f.movement.CreateReturn(ctx, movement.CreateReturnRequest{
			CustomerID: c.ID,
			Date:       time.Unix(int64(1000+i), 0),
			InvoiceNo:  no,
			Items: []trade.ReturnLineInput{{
				ItemID: shirt.ID, Qty: d(2), Price: d(15), Purchase: d(9), Amount: d(30),
			}},
		})
		require.NoError(t, err)
	}

	got, err := f.query.GetReturns(ctx, c.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "INV-1", got[0].InvoiceNo)
	assert.Equal(t, int64(1000), got[0].Date)
	assert.Equal(t, "Shirt", got[0].ItemName)
	assert.True(t, got[0].Amount.Equal(d(30)))
	assert.True(t, got[0].Purchase.Equal(d(9)))
	assert.Equal(t, "INV-2", got[1].InvoiceNo)

	other, err := f.query.GetReturns(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestQueryService_ListStockByDateRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Unix(5000, 0))
	item := f.item(t, "Polo", uuid.New())
	for _, at := range []int64{100, 200, 300, 6000} {
		f.stockIn(t, item, at)
	}

	tests := []struct {
		name     string
		from, to int64
		want     []int64
	}{
		{"bounds are inclusive", 100, 200, []int64{100, 200}},
		{"open end means now", 150, 0, []int64{200, 300}},
		{"everything up to now", 0, 0, []int64{100, 200, 300}},
		{"explicit future end", 0, 9999, []int64{100, 200, 300, 6000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.query.ListStockByDateRange(ctx, tt.from, tt.to)
			require.NoError(t, err)
			dates := make([]int64, len(got))
			for i, e := range got {
				dates[i] = e.Date
				assert.Equal(t, "Polo", e.ItemName)
			}
			assert.Equal(t, tt.want, dates)
		})
	}

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := f.query.ListStockByDateRange(ctx, 300, 200)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestQueryService_ListStockByBranch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Now())
	north, south := uuid.New(), uuid.New()
	f.stockIn(t, f.item(t, "Polo", north), 100)
	f.stockIn(t, f.item(t, "Jeans", south), 200)

	one, err := f.query.ListStockByBranch(ctx, reconciliation.StockByBranchRequest{BranchID: north})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, north, one[0].BranchID)

	all, err := f.query.ListStockByBranch(ctx, reconciliation.StockByBranchRequest{All: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.query.ListStockByBranch(ctx, reconciliation.StockByBranchRequest{})
	assert.True(t, errors.Is(err, shared.ErrValidation), "a missing branch id never means all branches")
}
