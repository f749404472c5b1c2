package trade

import (
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleTransaction is a sale written by the point-of-sale collaborator.
// This service only reads it.
type SaleTransaction struct {
	shared.BaseEntity
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceNo  string     `gorm:"type:varchar(100);not null"`
	Date       int64      `gorm:"not null"`
	Lines      []SaleLine `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleTransaction) TableName() string {
	return "sale_transactions"
}

// SaleLine is one sold item
type SaleLine struct {
	shared.BaseEntity
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	Qty           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}
