package trade

import (
	"context"

	"github.com/google/uuid"
)

// SalesReturnRepository persists return headers. Find methods populate LineIDs.
type SalesReturnRepository interface {
	Create(ctx context.Context, r *SalesReturn) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]SalesReturn, error)
	FindByCustomerAndInvoice(ctx context.Context, customerID uuid.UUID, invoiceNo string) ([]SalesReturn, error)

	// FindLineViews returns every line of the customer's returns joined with the
	// return header and item name, in return then line order
	FindLineViews(ctx context.Context, customerID uuid.UUID) ([]ReturnLineView, error)

	// DeleteByIDs removes the headers and returns the number deleted
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// ProductLineRepository persists return lines
type ProductLineRepository interface {
	CreateBatch(ctx context.Context, lines []ProductLine) error
	FindByReturnIDs(ctx context.Context, returnIDs []uuid.UUID) ([]ProductLine, error)
	DeleteByReturnIDs(ctx context.Context, returnIDs []uuid.UUID) (int64, error)
}

// SaleTransactionRepository reads sales. Create exists for seeding.
type SaleTransactionRepository interface {
	Create(ctx context.Context, tx *SaleTransaction) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]SaleTransaction, error)
}
