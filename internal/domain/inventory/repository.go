package inventory

import (
	"context"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository persists items and applies counter deltas
type ItemRepository interface {
	// FindByID returns shared.ErrNotFound when the item does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// Create inserts a new item
	Create(ctx context.Context, item *Item) error

	// ApplyDelta atomically adds d to the item's counters (col = col + ?).
	// Returns shared.ErrNotFound when no row matched.
	ApplyDelta(ctx context.Context, id uuid.UUID, d ItemDelta) error
}

// ArticleRepository persists articles. A duplicate name at the same branch
// surfaces as shared.ErrConflict.
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	FindAll(ctx context.Context) ([]Article, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]Article, error)
	Create(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article) error

	// DeleteByID removes the article. Items and stock entries that reference
	// it are left alone.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// StockEntryRepository is the append-only stock ledger
type StockEntryRepository interface {
	// Create appends an entry
	Create(ctx context.Context, entry *StockEntry) error

	// FindByDateRange returns entries whose date falls inside r, oldest first
	FindByDateRange(ctx context.Context, r shared.EpochRange) ([]StockEntryView, error)

	// FindByBranch returns entries of the branches selected by scope, oldest first
	FindByBranch(ctx context.Context, scope BranchScope) ([]StockEntryView, error)
}
