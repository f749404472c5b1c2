package movement

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the ledger and aggregate repositories.
// All repository operations inside Execute are part of one database transaction and are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories of one movement.
// All repositories returned share the same underlying database transaction.
//
//   - Ledger (append-only): StockEntries, Returns, ProductLines
//   - Aggregates (increment-only): Items, Customers
type TransactionalRepositories interface {
	Items() inventory.ItemRepository
	StockEntries() inventory.StockEntryRepository
	Customers() partner.CustomerRepository
	Returns() trade.SalesReturnRepository
	ProductLines() trade.ProductLineRepository

	// Savepoint runs fn so that a failure inside it can be undone without
	// aborting the enclosing transaction. Retried steps run inside one.
	Savepoint(ctx context.Context, name string, fn func() error) error
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing with in-memory or mocked repositories.
type NoOpTransactionScope struct {
	items        inventory.ItemRepository
	stockEntries inventory.StockEntryRepository
	customers    partner.CustomerRepository
	returns      trade.SalesReturnRepository
	productLines trade.ProductLineRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	items inventory.ItemRepository,
	stockEntries inventory.StockEntryRepository,
	customers partner.CustomerRepository,
	returns trade.SalesReturnRepository,
	productLines trade.ProductLineRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		items:        items,
		stockEntries: stockEntries,
		customers:    customers,
		returns:      returns,
		productLines: productLines,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Items() inventory.ItemRepository { return s.items }
func (s *NoOpTransactionScope) StockEntries() inventory.StockEntryRepository { return s.stockEntries }
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }
func (s *NoOpTransactionScope) Returns() trade.SalesReturnRepository { return s.returns }
func (s *NoOpTransactionScope) ProductLines() trade.ProductLineRepository { return s.productLines }

// Savepoint just runs fn.
func (s *NoOpTransactionScope) Savepoint(_ context.Context, _ string, fn func() error) error {
	return fn()
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
