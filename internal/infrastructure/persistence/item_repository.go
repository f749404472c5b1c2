package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errItemNotFound = shared.NewNotFoundError("Item not found")

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError("find item", err, errItemNotFound)
	}
	return &item, nil
}

// Create inserts a new item
func (r *GormItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return translateError("create item", r.db.WithContext(ctx).Create(item).Error, nil)
}

// ApplyDelta adds d to the item counters in a single UPDATE.
// A NULL in_qty/out_qty from legacy rows counts as zero.
func (r *GormItemRepository) ApplyDelta(ctx context.Context, id uuid.UUID, d inventory.ItemDelta) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"qty":     increment("qty", d.Qty),
			"in_qty":  increment("in_qty", d.InQty),
			"out_qty": increment("out_qty", d.OutQty),
		})
	if result.Error != nil {
		return translateError("apply item delta", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errItemNotFound
	}
	return nil
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
