package catalog

import (
	"context"
	"testing"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleService_Lifecycle(t *testing.T) {
	f := newCatalog(t)
	ctx := context.Background()
	mainBranch, outlet := uuid.New(), uuid.New()

	polo := f.article(t, " Polo ", mainBranch)
	assert.Equal(t, "Polo", polo.Name)
	f.article(t, "Chino", mainBranch)
	f.article(t, "Polo", outlet)

	t.Run("duplicate name at a branch is a conflict", func(t *testing.T) {
		_, err := f.articles.Create(ctx, CreateArticleRequest{Name: "Polo", BranchID: mainBranch})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("lists all and by branch", func(t *testing.T) {
		all, err := f.articles.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		atOutlet, err := f.articles.ListByBranch(ctx, outlet)
		require.NoError(t, err)
		require.Len(t, atOutlet, 1)
		assert.Equal(t, outlet, atOutlet[0].BranchID)
	})

	t.Run("branch listing needs a branch", func(t *testing.T) {
		_, err := f.articles.ListByBranch(ctx, uuid.Nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("update overlays set fields", func(t *testing.T) {
		code := "PL-01"
		updated, err := f.articles.Update(ctx, polo.ID, UpdateArticleRequest{Code: &code})
		require.NoError(t, err)
		assert.Equal(t, "PL-01", updated.Code)
		assert.Equal(t, "Polo", updated.Name)

		blank := " "
		_, err = f.articles.Update(ctx, polo.ID, UpdateArticleRequest{Name: &blank})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, f.articles.Delete(ctx, polo.ID))
		_, err := f.articles.GetByID(ctx, polo.ID)
		assert.True(t, shared.IsNotFound(err))
		assert.True(t, shared.IsNotFound(f.articles.Delete(ctx, polo.ID)))
	})
}
