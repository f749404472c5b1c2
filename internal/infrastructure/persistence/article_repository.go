package persistence

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errArticleNotFound = shared.NewNotFoundError("Article not found")

// GormArticleRepository implements inventory.ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Article, error) {
	var a inventory.Article
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translateError("find article", err, errArticleNotFound)
	}
	return &a, nil
}

// FindAll returns every article ordered by name
func (r *GormArticleRepository) FindAll(ctx context.Context) ([]inventory.Article, error) {
	var articles []inventory.Article
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&articles).Error; err != nil {
		return nil, translateError("list articles", err, nil)
	}
	return articles, nil
}

func (r *GormArticleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]inventory.Article, error) {
	var articles []inventory.Article
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&articles).Error
	if err != nil {
		return nil, translateError("list articles by branch", err, nil)
	}
	return articles, nil
}

func (r *GormArticleRepository) Create(ctx context.Context, a *inventory.Article) error {
	return articleConflict(translateError("create article", r.db.WithContext(ctx).Create(a).Error, nil))
}

// Update writes the editable columns of a
func (r *GormArticleRepository) Update(ctx context.Context, a *inventory.Article) error {
	result := r.db.WithContext(ctx).
		Model(a).
		Select("name", "code", "branch_id", "description", "updated_at").
		Updates(a)
	if result.Error != nil {
		return articleConflict(translateError("update article", result.Error, nil))
	}
	if result.RowsAffected == 0 {
		return errArticleNotFound
	}
	return nil
}

func (r *GormArticleRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Article{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete article", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return errArticleNotFound
	}
	return nil
}

func articleConflict(err error) error {
	if shared.IsConflict(err) {
		return shared.NewConflictError("Article with this name already exists at the branch")
	}
	return err
}

var _ inventory.ArticleRepository = (*GormArticleRepository)(nil)
