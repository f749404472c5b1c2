package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "a@example.com")
	seedCustomer(t, db, "b@example.com")

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		dup, err := partner.NewCustomer(partner.CustomerProfile{Name: "Dup", Email: "a@example.com"})
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.True(t, errors.Is(err, shared.ErrConflict))
	})

	t.Run("email existence checks", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "A@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmailExcludingID(ctx, "a@example.com", c.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("profile update keeps totals", func(t *testing.T) {
		require.NoError(t, repo.ApplyBalanceDelta(ctx, c.ID, partner.ReturnRecordedDelta(decimal.NewFromInt(40))))

		stale, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		stale.ReturnAmount = decimal.NewFromInt(999)
		p := stale.Profile()
		p.Name = "Renamed"
		require.NoError(t, stale.UpdateProfile(p))
		require.NoError(t, repo.UpdateProfile(ctx, stale))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name)
		assert.True(t, found.ReturnAmount.Equal(decimal.NewFromInt(40)))
		assert.True(t, found.Remaining.Equal(decimal.NewFromInt(-40)))
	})

	t.Run("list all and by branch", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		byBranch, err := repo.FindByBranchNumber(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, byBranch, 2)

		none, err := repo.FindByBranchNumber(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, c.ID))
		_, err := repo.FindByID(ctx, c.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.True(t, errors.Is(repo.DeleteByID(ctx, c.ID), shared.ErrNotFound))
	})

	t.Run("balance delta on missing customer", func(t *testing.T) {
		err := repo.ApplyBalanceDelta(ctx, uuid.New(), partner.ReturnRecordedDelta(decimal.NewFromInt(1)))
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormCustomerRepository_ApplyBalanceDelta_Postgres(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCustomerRepository(db)

	mock.ExpectExec(`UPDATE "customers" SET .*ROUND\(COALESCE\(remaining, 0\) \+ \$\d+, 4\).*ROUND\(COALESCE\(return_amount, 0\) \+ \$\d+, 4\).* WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyBalanceDelta(context.Background(), uuid.New(), partner.ReturnRecordedDelta(decimal.NewFromInt(5)))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
