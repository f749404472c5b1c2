package inventory

import (
	"strings"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a sellable variant (an article in one size at one branch).
// Its counters are denormalized aggregates of the stock and return ledgers and
// only ever change through ItemRepository.ApplyDelta.
type Item struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(200);not null"`
	Size      string          `gorm:"type:varchar(50)"`
	ArticleID uuid.UUID       `gorm:"type:uuid;index"`
	BranchID  uuid.UUID       `gorm:"type:uuid;index"`
	Qty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // on hand
	InQty     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // cumulative stock-in
	OutQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // cumulative out, decreased by returns
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates an item with zeroed counters
func NewItem(name, size string, articleID, branchID uuid.UUID) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Item name cannot exceed 200 characters")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Size:       strings.TrimSpace(size),
		ArticleID:  articleID,
		BranchID:   branchID,
		Qty:        decimal.Zero,
		InQty:      decimal.Zero,
		OutQty:     decimal.Zero,
	}, nil
}

// Apply mirrors a persisted delta onto the in-memory copy
func (i *Item) Apply(d ItemDelta) {
	i.Qty = i.Qty.Add(d.Qty)
	i.InQty = i.InQty.Add(d.InQty)
	i.OutQty = i.OutQty.Add(d.OutQty)
}
