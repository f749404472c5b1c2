package catalog

import (
	"time"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to register a sellable item.
// Counters always start at zero.
type CreateItemRequest struct {
	Name      string    `json:"name" binding:"required,min=1,max=200"`
	Size      string    `json:"size" binding:"max=50"`
	ArticleID uuid.UUID `json:"article_id" binding:"required"`
	BranchID  uuid.UUID `json:"branch_id" binding:"required"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	ArticleID uuid.UUID       `json:"article_id"`
	BranchID  uuid.UUID       `json:"branch_id"`
	Qty       decimal.Decimal `json:"qty"`
	InQty     decimal.Decimal `json:"in_qty"`
	OutQty    decimal.Decimal `json:"out_qty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Size:      i.Size,
		ArticleID: i.ArticleID,
		BranchID:  i.BranchID,
		Qty:       i.Qty,
		InQty:     i.InQty,
		OutQty:    i.OutQty,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
