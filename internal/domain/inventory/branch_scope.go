package inventory

import (
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchScope selects which branches a stock query covers.
// The zero value is not a valid scope; use AllBranches or OnlyBranch.
type BranchScope struct {
	all      bool
	branchID uuid.UUID
}

// AllBranches selects stock of every branch
func AllBranches() BranchScope {
	return BranchScope{all: true}
}

// OnlyBranch selects stock of a single branch
func OnlyBranch(branchID uuid.UUID) (BranchScope, error) {
	if branchID == uuid.Nil {
		return BranchScope{}, shared.NewValidationError("Branch ID is required")
	}
	return BranchScope{branchID: branchID}, nil
}

// IsAll reports whether the scope spans every branch
func (s BranchScope) IsAll() bool {
	return s.all
}

// BranchID returns the selected branch, uuid.Nil for AllBranches
func (s BranchScope) BranchID() uuid.UUID {
	return s.branchID
}

// Valid reports whether the scope was built by one of the constructors
func (s BranchScope) Valid() bool {
	return s.all || s.branchID != uuid.Nil
}
