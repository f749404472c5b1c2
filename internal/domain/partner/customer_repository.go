package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository persists customers and applies balance deltas
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context) ([]Customer, error)
	FindByBranchNumber(ctx context.Context, branchNumber int) ([]Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// Create inserts c; a duplicate email surfaces as shared.ErrConflict
	Create(ctx context.Context, c *Customer) error

	// UpdateProfile writes only the editable fields of c
	UpdateProfile(ctx context.Context, c *Customer) error

	// DeleteByID removes the customer. Returns that reference it are left alone.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// ApplyBalanceDelta atomically adds d to the customer's totals.
	// Returns shared.ErrNotFound when no row matched.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, d BalanceDelta) error
}
