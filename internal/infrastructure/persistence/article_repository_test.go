package persistence

import (
	"context"
	"testing"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormArticleRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormArticleRepository(db)
	ctx := context.Background()
	mainBranch, outlet := uuid.New(), uuid.New()

	newArticle := func(name string, branch uuid.UUID) *inventory.Article {
		t.Helper()
		a, err := inventory.NewArticle(inventory.ArticleDetails{Name: name, BranchID: branch})
		require.NoError(t, err)
		return a
	}

	polo := newArticle("Polo", mainBranch)
	require.NoError(t, repo.Create(ctx, polo))
	require.NoError(t, repo.Create(ctx, newArticle("Chino", mainBranch)))
	require.NoError(t, repo.Create(ctx, newArticle("Polo", outlet)))

	t.Run("same name at the same branch is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, newArticle("Polo", mainBranch))
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("lists all and by branch", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		atMain, err := repo.FindByBranch(ctx, mainBranch)
		require.NoError(t, err)
		require.Len(t, atMain, 2)
		assert.Equal(t, "Chino", atMain[0].Name)
		assert.Equal(t, "Polo", atMain[1].Name)
	})

	t.Run("update writes editable fields", func(t *testing.T) {
		d := polo.Details()
		d.Code = "PL-01"
		require.NoError(t, polo.Update(d))
		require.NoError(t, repo.Update(ctx, polo))

		found, err := repo.FindByID(ctx, polo.ID)
		require.NoError(t, err)
		assert.Equal(t, "PL-01", found.Code)
	})

	t.Run("rename onto an existing name is a conflict", func(t *testing.T) {
		found, err := repo.FindByID(ctx, polo.ID)
		require.NoError(t, err)
		d := found.Details()
		d.Name = "Chino"
		require.NoError(t, found.Update(d))
		assert.ErrorIs(t, repo.Update(ctx, found), shared.ErrConflict)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, polo.ID))
		_, err := repo.FindByID(ctx, polo.ID)
		assert.True(t, shared.IsNotFound(err))
		assert.True(t, shared.IsNotFound(repo.DeleteByID(ctx, polo.ID)))
	})
}
