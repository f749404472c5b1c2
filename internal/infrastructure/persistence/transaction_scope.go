package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/application/movement"
	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements movement.TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos movement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Items() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockEntries() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Returns() trade.SalesReturnRepository {
	return NewGormSalesReturnRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductLines() trade.ProductLineRepository {
	return NewGormProductLineRepository(r.tx)
}

// Savepoint sets a savepoint, runs fn, and rolls back to the savepoint if fn fails.
// On postgres this also clears the aborted state a failed statement leaves behind,
// so fn can be attempted again in the same transaction.
func (r *gormTransactionalRepositories) Savepoint(ctx context.Context, name string, fn func() error) error {
	tx := r.tx.WithContext(ctx)
	if err := tx.SavePoint(name).Error; err != nil {
		return translateError("savepoint", err, nil)
	}
	if err := fn(); err != nil {
		if rbErr := tx.RollbackTo(name).Error; rbErr != nil {
			return shared.NewPersistenceError("rollback to savepoint", rbErr)
		}
		return err
	}
	return nil
}

var _ movement.TransactionScope = (*GormTransactionScope)(nil)
var _ movement.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
