// Package catalog registers the articles and items that stock movements refer to
package catalog

import (
	"context"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemService handles item-related operations
type ItemService struct {
	itemRepo    inventory.ItemRepository
	articleRepo inventory.ArticleRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, articleRepo inventory.ArticleRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo, articleRepo: articleRepo}
}

// Create registers an item with zeroed counters. The article must exist.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if req.BranchID == uuid.Nil {
		return nil, shared.NewValidationError("Branch ID is required")
	}
	if req.ArticleID == uuid.Nil {
		return nil, shared.NewValidationError("Article ID is required")
	}
	item, err := inventory.NewItem(req.Name, req.Size, req.ArticleID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.articleRepo.FindByID(ctx, req.ArticleID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}
