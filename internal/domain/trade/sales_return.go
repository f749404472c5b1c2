package trade

import (
	"strings"
	"time"

	"github.com/branchstock/backend/internal/domain/partner"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReturn records goods a customer brought back under an invoice.
// Its lines live in product_lines; LineIDs is their ordered id list.
type SalesReturn struct {
	shared.BaseEntity
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_return_customer_invoice,priority:1"`
	InvoiceNo   string          `gorm:"type:varchar(100);not null;index:idx_sales_return_customer_invoice,priority:2"`
	Date        int64           `gorm:"not null"` // epoch seconds
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	LineIDs []uuid.UUID `gorm:"-"`
}

// TableName returns the table name for GORM
func (SalesReturn) TableName() string {
	return "sales_returns"
}

// ReturnDraft is a return whose lines are built but not yet persisted
type ReturnDraft struct {
	Return *SalesReturn
	Lines  []ProductLine
}

// NewReturnDraft builds a return and its lines. The return id is assigned up
// front so each line can reference it. When strict is set every line amount
// must equal qty × price.
func NewReturnDraft(customerID uuid.UUID, date time.Time, invoiceNo string, discount decimal.Decimal, inputs []ReturnLineInput, strict bool) (*ReturnDraft, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer ID is required")
	}
	invoiceNo = strings.TrimSpace(invoiceNo)
	if invoiceNo == "" {
		return nil, shared.NewValidationError("Invoice number is required")
	}
	if len(inputs) == 0 {
		return nil, shared.NewValidationError("Return must have at least one item")
	}
	if discount.IsNegative() {
		return nil, shared.NewValidationError("Discount cannot be negative")
	}
	if err := shared.CheckScale("Discount", discount); err != nil {
		return nil, err
	}

	sr := &SalesReturn{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		InvoiceNo:   invoiceNo,
		Date:        shared.EpochSeconds(date),
		TotalAmount: decimal.Zero,
		Discount:    discount,
		LineIDs:     make([]uuid.UUID, 0, len(inputs)),
	}

	lines := make([]ProductLine, 0, len(inputs))
	for i, in := range inputs {
		if strict && !in.Amount.Equal(in.ExpectedAmount()) {
			return nil, shared.NewValidationError("Line amount does not match qty × price")
		}
		line, err := NewProductLine(sr.ID, i, in)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
		sr.LineIDs = append(sr.LineIDs, line.ID)
		sr.TotalAmount = sr.TotalAmount.Add(line.Amount)
	}

	return &ReturnDraft{Return: sr, Lines: lines}, nil
}

// BalanceDelta is the change this return causes on its customer
func (r *SalesReturn) BalanceDelta() partner.BalanceDelta {
	return partner.ReturnRecordedDelta(r.TotalAmount)
}

// HasLines reports whether the return owns at least one line
func (r *SalesReturn) HasLines() bool {
	return len(r.LineIDs) > 0
}
