package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockEntryRepository implements inventory.StockEntryRepository using GORM
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// Create appends a stock entry
func (r *GormStockEntryRepository) Create(ctx context.Context, entry *inventory.StockEntry) error {
	return translateError("create stock entry", r.db.WithContext(ctx).Create(entry).Error, nil)
}

// FindByDateRange returns entries with rng.From <= date <= rng.To
func (r *GormStockEntryRepository) FindByDateRange(ctx context.Context, rng shared.EpochRange) ([]inventory.StockEntryView, error) {
	var views []inventory.StockEntryView
	err := r.viewQuery(ctx).
		Where("stock_entries.date >= ? AND stock_entries.date <= ?", rng.From, rng.To).
		Order("stock_entries.date ASC, stock_entries.created_at ASC").
		Find(&views).Error
	if err != nil {
		return nil, translateError("find stock by date", err, nil)
	}
	return views, nil
}

// FindByBranch returns entries of the branches selected by scope
func (r *GormStockEntryRepository) FindByBranch(ctx context.Context, scope inventory.BranchScope) ([]inventory.StockEntryView, error) {
	if !scope.Valid() {
		return nil, shared.NewValidationError("Branch scope is required")
	}
	query := r.viewQuery(ctx)
	if !scope.IsAll() {
		query = query.Where("stock_entries.branch_id = ?", scope.BranchID())
	}

	var views []inventory.StockEntryView
	if err := query.Order("stock_entries.date ASC, stock_entries.created_at ASC").Find(&views).Error; err != nil {
		return nil, translateError("find stock by branch", err, nil)
	}
	return views, nil
}

// viewQuery selects stock entries with the name of their item.
// LEFT JOIN keeps entries whose item has since been removed.
func (r *GormStockEntryRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("stock_entries").
		Select("stock_entries.*, COALESCE(items.name, '') AS item_name").
		Joins("LEFT JOIN items ON items.id = stock_entries.item_id")
}

var _ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
