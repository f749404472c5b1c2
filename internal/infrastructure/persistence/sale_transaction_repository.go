package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleTransactionRepository implements trade.SaleTransactionRepository using GORM
type GormSaleTransactionRepository struct {
	db *gorm.DB
}

// NewGormSaleTransactionRepository creates a new GormSaleTransactionRepository
func NewGormSaleTransactionRepository(db *gorm.DB) *GormSaleTransactionRepository {
	return &GormSaleTransactionRepository{db: db}
}

// Create inserts a sale with its lines
func (r *GormSaleTransactionRepository) Create(ctx context.Context, tx *trade.SaleTransaction) error {
	return translateError("create sale", r.db.WithContext(ctx).Create(tx).Error, nil)
}

// FindByCustomer returns a customer's sales with lines, oldest first
func (r *GormSaleTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]trade.SaleTransaction, error) {
	var sales []trade.SaleTransaction
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("date ASC, created_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, translateError("find sales", err, nil)
	}
	return sales, nil
}

var _ trade.SaleTransactionRepository = (*GormSaleTransactionRepository)(nil)
