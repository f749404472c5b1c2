package trade

import (
	"strings"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductLine is one returned item inside a SalesReturn.
// Position keeps the caller's line order.
type ProductLine struct {
	shared.BaseEntity
	ReturnID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticleName string          `gorm:"type:varchar(200)"`
	ArticleSize string          `gorm:"type:varchar(50)"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Purchase    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductLine) TableName() string {
	return "product_lines"
}

// ReturnLineInput is a caller-supplied line of a return
type ReturnLineInput struct {
	ItemID      uuid.UUID
	ArticleName string
	ArticleSize string
	Qty         decimal.Decimal
	Price       decimal.Decimal
	Purchase    decimal.Decimal
	Amount      decimal.Decimal
}

// ExpectedAmount is qty × price
func (in ReturnLineInput) ExpectedAmount() decimal.Decimal {
	return in.Qty.Mul(in.Price)
}

// NewProductLine validates in and binds it to its return
func NewProductLine(returnID uuid.UUID, position int, in ReturnLineInput) (*ProductLine, error) {
	if returnID == uuid.Nil {
		return nil, shared.NewValidationError("Return ID is required")
	}
	if in.ItemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID is required")
	}
	if !in.Qty.IsPositive() {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if in.Price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}
	if in.Purchase.IsNegative() {
		return nil, shared.NewValidationError("Purchase price cannot be negative")
	}
	if in.Amount.IsNegative() {
		return nil, shared.NewValidationError("Amount cannot be negative")
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{{"Quantity", in.Qty}, {"Price", in.Price}, {"Purchase price", in.Purchase}, {"Amount", in.Amount}} {
		if err := shared.CheckScale(f.name, f.v); err != nil {
			return nil, err
		}
	}

	return &ProductLine{
		BaseEntity:  shared.NewBaseEntity(),
		ReturnID:    returnID,
		Position:    position,
		ItemID:      in.ItemID,
		ArticleName: strings.TrimSpace(in.ArticleName),
		ArticleSize: strings.TrimSpace(in.ArticleSize),
		Qty:         in.Qty,
		Price:       in.Price,
		Purchase:    in.Purchase,
		Amount:      in.Amount,
	}, nil
}

// ItemDelta is the change this line causes on its item
func (l *ProductLine) ItemDelta() inventory.ItemDelta {
	return inventory.ReturnDelta(l.Qty)
}
