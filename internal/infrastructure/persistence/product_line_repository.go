package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductLineRepository implements trade.ProductLineRepository using GORM
type GormProductLineRepository struct {
	db *gorm.DB
}

// NewGormProductLineRepository creates a new GormProductLineRepository
func NewGormProductLineRepository(db *gorm.DB) *GormProductLineRepository {
	return &GormProductLineRepository{db: db}
}

// CreateBatch inserts lines in one statement
func (r *GormProductLineRepository) CreateBatch(ctx context.Context, lines []trade.ProductLine) error {
	if len(lines) == 0 {
		return nil
	}
	return translateError("create return lines", r.db.WithContext(ctx).Create(&lines).Error, nil)
}

// FindByReturnIDs returns the lines of the given returns in line order
func (r *GormProductLineRepository) FindByReturnIDs(ctx context.Context, returnIDs []uuid.UUID) ([]trade.ProductLine, error) {
	if len(returnIDs) == 0 {
		return []trade.ProductLine{}, nil
	}
	var lines []trade.ProductLine
	err := r.db.WithContext(ctx).
		Where("return_id IN ?", returnIDs).
		Order("return_id, position ASC").
		Find(&lines).Error
	if err != nil {
		return nil, translateError("find return lines", err, nil)
	}
	return lines, nil
}

// DeleteByReturnIDs deletes all lines owned by the given returns
func (r *GormProductLineRepository) DeleteByReturnIDs(ctx context.Context, returnIDs []uuid.UUID) (int64, error) {
	if len(returnIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("return_id IN ?", returnIDs).Delete(&trade.ProductLine{})
	if result.Error != nil {
		return 0, translateError("delete return lines", result.Error, nil)
	}
	return result.RowsAffected, nil
}

var _ trade.ProductLineRepository = (*GormProductLineRepository)(nil)
