package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesReturnRepository implements trade.SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// Create inserts a return header. Its lines must be created separately.
func (r *GormSalesReturnRepository) Create(ctx context.Context, sr *trade.SalesReturn) error {
	return translateError("create sales return", r.db.WithContext(ctx).Create(sr).Error, nil)
}

// FindByCustomer returns a customer's returns, oldest first
func (r *GormSalesReturnRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]trade.SalesReturn, error) {
	var returns []trade.SalesReturn
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date ASC, created_at ASC").
		Find(&returns).Error
	if err != nil {
		return nil, translateError("find returns", err, nil)
	}
	if err := r.loadLineIDs(ctx, returns); err != nil {
		return nil, err
	}
	return returns, nil
}

// FindByCustomerAndInvoice returns a customer's returns filed under invoiceNo
func (r *GormSalesReturnRepository) FindByCustomerAndInvoice(ctx context.Context, customerID uuid.UUID, invoiceNo string) ([]trade.SalesReturn, error) {
	var returns []trade.SalesReturn
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND invoice_no = ?", customerID, invoiceNo).
		Order("date ASC, created_at ASC").
		Find(&returns).Error
	if err != nil {
		return nil, translateError("find returns by invoice", err, nil)
	}
	if err := r.loadLineIDs(ctx, returns); err != nil {
		return nil, err
	}
	return returns, nil
}

// lineIDRow is a projection of product_lines used to rebuild LineIDs
type lineIDRow struct {
	ID       uuid.UUID
	ReturnID uuid.UUID
}

func (r *GormSalesReturnRepository) loadLineIDs(ctx context.Context, returns []trade.SalesReturn) error {
	if len(returns) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(returns))
	index := make(map[uuid.UUID]int, len(returns))
	for i := range returns {
		ids[i] = returns[i].ID
		index[returns[i].ID] = i
		returns[i].LineIDs = make([]uuid.UUID, 0)
	}

	var rows []lineIDRow
	err := r.db.WithContext(ctx).
		Model(&trade.ProductLine{}).
		Select("id, return_id").
		Where("return_id IN ?", ids).
		Order("return_id, position ASC").
		Scan(&rows).Error
	if err != nil {
		return translateError("load return lines", err, nil)
	}
	for _, row := range rows {
		i := index[row.ReturnID]
		returns[i].LineIDs = append(returns[i].LineIDs, row.ID)
	}
	return nil
}

// FindLineViews flattens every line of the customer's returns with the return
// header and the current item name
func (r *GormSalesReturnRepository) FindLineViews(ctx context.Context, customerID uuid.UUID) ([]trade.ReturnLineView, error) {
	var views []trade.ReturnLineView
	err := r.db.WithContext(ctx).
		Table("product_lines AS pl").
		Select(`sr.id AS return_id, pl.position AS position, sr.date AS date, sr.invoice_no AS invoice_no,
			pl.item_id AS item_id, COALESCE(i.name, '') AS item_name,
			pl.qty AS qty, pl.purchase AS purchase, pl.price AS price, pl.amount AS amount`).
		Joins("JOIN sales_returns sr ON sr.id = pl.return_id").
		Joins("LEFT JOIN items i ON i.id = pl.item_id").
		Where("sr.customer_id = ?", customerID).
		Order("sr.date ASC, sr.created_at ASC, pl.position ASC").
		Scan(&views).Error
	if err != nil {
		return nil, translateError("find return lines", err, nil)
	}
	return views, nil
}

// DeleteByIDs deletes return headers
func (r *GormSalesReturnRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&trade.SalesReturn{})
	if result.Error != nil {
		return 0, translateError("delete returns", result.Error, nil)
	}
	return result.RowsAffected, nil
}

var _ trade.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
