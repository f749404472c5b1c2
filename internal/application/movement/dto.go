package movement

import (
	"time"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddStockRequest records goods received at a branch
type AddStockRequest struct {
	BranchID       uuid.UUID
	BranchName     string
	BranchNumber   int
	ArticleID      uuid.UUID
	ArticleName    string
	ItemID         uuid.UUID
	Size           string
	Qty            decimal.Decimal
	Purchase       decimal.Decimal
	InvoiceNo      string
	TruckNo        string
	Date           time.Time // zero means now
	Description    string
	IdempotencyKey string
}

// StockEntryResponse represents a stock entry in API responses
type StockEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	BranchID     uuid.UUID       `json:"branch_id"`
	BranchName   string          `json:"branch_name"`
	BranchNumber int             `json:"branch_number"`
	ArticleID    uuid.UUID       `json:"article_id"`
	ArticleName  string          `json:"article_name"`
	ItemID       uuid.UUID       `json:"item_id"`
	ItemName     string          `json:"item_name,omitempty"`
	Size         string          `json:"size"`
	Qty          decimal.Decimal `json:"qty"`
	Purchase     decimal.Decimal `json:"purchase"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceNo    string          `json:"invoice_no"`
	TruckNo      string          `json:"truck_no"`
	Date         int64           `json:"date"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToStockEntryResponse converts a stock entry to its response form
func ToStockEntryResponse(e *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:           e.ID,
		BranchID:     e.BranchID,
		BranchName:   e.BranchName,
		BranchNumber: e.BranchNumber,
		ArticleID:    e.ArticleID,
		ArticleName:  e.ArticleName,
		ItemID:       e.ItemID,
		Size:         e.Size,
		Qty:          e.Qty,
		Purchase:     e.Purchase,
		TotalAmount:  e.TotalAmount,
		InvoiceNo:    e.InvoiceNo,
		TruckNo:      e.TruckNo,
		Date:         e.Date,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
}

// CreateReturnRequest records goods a customer brought back.
// A zero Date means now.
type CreateReturnRequest struct {
	CustomerID     uuid.UUID
	Date           time.Time
	InvoiceNo      string
	Discount       decimal.Decimal
	Items          []trade.ReturnLineInput
	IdempotencyKey string
}

// ProductLineResponse represents a return line in API responses
type ProductLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	ItemID      uuid.UUID       `json:"item_id"`
	ArticleName string          `json:"article_name"`
	ArticleSize string          `json:"article_size"`
	Qty         decimal.Decimal `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Purchase    decimal.Decimal `json:"purchase"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalesReturnResponse represents a recorded return in API responses
type SalesReturnResponse struct {
	ID          uuid.UUID             `json:"id"`
	CustomerID  uuid.UUID             `json:"customer_id"`
	InvoiceNo   string                `json:"invoice_no"`
	Date        int64                 `json:"date"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Discount    decimal.Decimal       `json:"discount"`
	LineIDs     []uuid.UUID           `json:"line_ids"`
	Lines       []ProductLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toSalesReturnResponse(d *trade.ReturnDraft) *SalesReturnResponse {
	lines := make([]ProductLineResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ProductLineResponse{
			ID:          l.ID,
			Position:    l.Position,
			ItemID:      l.ItemID,
			ArticleName: l.ArticleName,
			ArticleSize: l.ArticleSize,
			Qty:         l.Qty,
			Price:       l.Price,
			Purchase:    l.Purchase,
			Amount:      l.Amount,
		}
	}
	sr := d.Return
	return &SalesReturnResponse{
		ID:          sr.ID,
		CustomerID:  sr.CustomerID,
		InvoiceNo:   sr.InvoiceNo,
		Date:        sr.Date,
		TotalAmount: sr.TotalAmount,
		Discount:    sr.Discount,
		LineIDs:     sr.LineIDs,
		Lines:       lines,
		CreatedAt:   sr.CreatedAt,
	}
}

// DeleteInvoiceRequest removes a customer's returns filed under one invoice number
type DeleteInvoiceRequest struct {
	CustomerID uuid.UUID
	InvoiceNo  string
}

// DeleteInvoiceResult reports what a deletion reversed
type DeleteInvoiceResult struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	InvoiceNo      string          `json:"invoice_no"`
	ReturnsRemoved int             `json:"returns_removed"`
	LinesReversed  int             `json:"lines_reversed"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Discount       decimal.Decimal `json:"discount"`
}
