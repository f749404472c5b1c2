package inventory

import (
	"strings"
	"time"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry is an immutable record of goods received at a branch.
// Branch and article names are copied at write time so the record stays readable
// even if the referenced catalogue rows change later.
type StockEntry struct {
	shared.BaseEntity
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchName   string          `gorm:"type:varchar(100);not null"`
	BranchNumber int             `gorm:"not null;default:0"`
	ArticleID    uuid.UUID       `gorm:"type:uuid;not null"`
	ArticleName  string          `gorm:"type:varchar(200);not null"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Size         string          `gorm:"type:varchar(50);not null"`
	Qty          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Purchase     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InvoiceNo    string          `gorm:"type:varchar(100);not null"`
	TruckNo      string          `gorm:"type:varchar(100);not null"`
	Date         int64           `gorm:"not null;index"` // epoch seconds
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// StockEntryParams carries everything needed to record a stock intake
type StockEntryParams struct {
	BranchID     uuid.UUID
	BranchName   string
	BranchNumber int
	ArticleID    uuid.UUID
	ArticleName  string
	ItemID       uuid.UUID
	Size         string
	Qty          decimal.Decimal
	Purchase     decimal.Decimal
	InvoiceNo    string
	TruckNo      string
	Date         time.Time
	Description  string
}

// NewStockEntry validates p and computes the entry total as purchase × qty,
// rounded to the stored scale
func NewStockEntry(p StockEntryParams) (*StockEntry, error) {
	if p.ItemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID is required")
	}
	if p.BranchID == uuid.Nil {
		return nil, shared.NewValidationError("Branch ID is required")
	}
	if p.ArticleID == uuid.Nil {
		return nil, shared.NewValidationError("Article ID is required")
	}
	if !p.Qty.IsPositive() {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if p.Purchase.IsNegative() {
		return nil, shared.NewValidationError("Purchase price cannot be negative")
	}
	if p.Date.IsZero() {
		return nil, shared.NewValidationError("Date is required")
	}
	if err := shared.CheckScale("Quantity", p.Qty); err != nil {
		return nil, err
	}
	if err := shared.CheckScale("Purchase price", p.Purchase); err != nil {
		return nil, err
	}

	return &StockEntry{
		BaseEntity:   shared.NewBaseEntity(),
		BranchID:     p.BranchID,
		BranchName:   strings.TrimSpace(p.BranchName),
		BranchNumber: p.BranchNumber,
		ArticleID:    p.ArticleID,
		ArticleName:  strings.TrimSpace(p.ArticleName),
		ItemID:       p.ItemID,
		Size:         strings.TrimSpace(p.Size),
		Qty:          p.Qty,
		Purchase:     p.Purchase,
		TotalAmount:  p.Purchase.Mul(p.Qty).Round(shared.AmountScale),
		InvoiceNo:    strings.TrimSpace(p.InvoiceNo),
		TruckNo:      strings.TrimSpace(p.TruckNo),
		Date:         shared.EpochSeconds(p.Date),
		Description:  p.Description,
	}, nil
}

// Delta returns the item change this entry causes
func (e *StockEntry) Delta() ItemDelta {
	return StockInDelta(e.Qty)
}

// StockEntryView is a stock entry joined with the current item name
type StockEntryView struct {
	StockEntry
	ItemName string
}
