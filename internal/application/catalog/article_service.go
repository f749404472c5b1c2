package catalog

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// ArticleService manages the articles each branch carries
type ArticleService struct {
	articleRepo inventory.ArticleRepository
}

func NewArticleService(articleRepo inventory.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// Create adds an article; a name already used at the branch is a conflict
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*ArticleResponse, error) {
	article, err := inventory.NewArticle(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// List returns every article ordered by name
func (s *ArticleService) List(ctx context.Context) ([]ArticleResponse, error) {
	articles, err := s.articleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(articles), nil
}

// ListByBranch returns the articles carried by one branch
func (s *ArticleService) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]ArticleResponse, error) {
	scope, err := inventory.OnlyBranch(branchID)
	if err != nil {
		return nil, err
	}
	articles, err := s.articleRepo.FindByBranch(ctx, scope.BranchID())
	if err != nil {
		return nil, err
	}
	return toArticleResponses(articles), nil
}

func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := article.Update(req.applyTo(article.Details())); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// Delete removes an article. Items and stock entries keep its id.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.articleRepo.DeleteByID(ctx, id)
}
