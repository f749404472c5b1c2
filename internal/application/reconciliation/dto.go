package reconciliation

import (
	"github.com/branchstock/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillNumberResponse is one invoice number of a customer. Kind is 1 for a
// sale and 2 for a return.
type BillNumberResponse struct {
	InvoiceNo string         `json:"invoice_no"`
	Kind      trade.BillKind `json:"kind"`
}

// ReturnLineResponse is one returned line flattened with its return header
type ReturnLineResponse struct {
	ReturnID  uuid.UUID       `json:"return_id"`
	Date      int64           `json:"date"`
	InvoiceNo string          `json:"invoice_no"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Qty       decimal.Decimal `json:"qty"`
	Purchase  decimal.Decimal `json:"purchase"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
}

// StockByBranchRequest selects stock entries by branch. All must be set
// explicitly to list every branch; otherwise BranchID is required.
type StockByBranchRequest struct {
	All      bool
	BranchID uuid.UUID
}

func toBillNumberResponses(entries []trade.BillEntry) []BillNumberResponse {
	out := make([]BillNumberResponse, len(entries))
	for i, e := range entries {
		out[i] = BillNumberResponse{InvoiceNo: e.InvoiceNo, Kind: e.Kind}
	}
	return out
}

func toReturnLineResponses(views []trade.ReturnLineView) []ReturnLineResponse {
	out := make([]ReturnLineResponse, len(views))
	for i, v := range views {
		out[i] = ReturnLineResponse{
			ReturnID:  v.ReturnID,
			Date:      v.Date,
			InvoiceNo: v.InvoiceNo,
			ItemID:    v.ItemID,
			ItemName:  v.ItemName,
			Qty:       v.Qty,
			Purchase:  v.Purchase,
			Price:     v.Price,
			Amount:    v.Amount,
		}
	}
	return out
}
