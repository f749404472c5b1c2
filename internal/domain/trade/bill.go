package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillKind tags a bill number with the kind of document it came from
type BillKind int

const (
	BillKindSale   BillKind = 1
	BillKindReturn BillKind = 2
)

// String implements fmt.Stringer
func (k BillKind) String() string {
	switch k {
	case BillKindSale:
		return "sale"
	case BillKindReturn:
		return "return"
	default:
		return fmt.Sprintf("BillKind(%d)", int(k))
	}
}

// BillEntry is one invoice number of a customer
type BillEntry struct {
	InvoiceNo string
	Kind      BillKind
}

// MergeBillNumbers lists invoice numbers of sales then returns and keeps the
// first occurrence of each invoice number. Documents with no lines contribute
// nothing.
func MergeBillNumbers(sales []SaleTransaction, returns []SalesReturn) []BillEntry {
	seen := make(map[string]struct{})
	result := make([]BillEntry, 0)
	add := func(invoiceNo string, kind BillKind) {
		if _, ok := seen[invoiceNo]; ok {
			return
		}
		seen[invoiceNo] = struct{}{}
		result = append(result, BillEntry{InvoiceNo: invoiceNo, Kind: kind})
	}

	for _, s := range sales {
		if len(s.Lines) > 0 {
			add(s.InvoiceNo, BillKindSale)
		}
	}
	for _, r := range returns {
		if r.HasLines() {
			add(r.InvoiceNo, BillKindReturn)
		}
	}
	return result
}

// ReturnLineView is a returned line flattened with its return header
type ReturnLineView struct {
	ReturnID  uuid.UUID
	Position  int
	Date      int64
	InvoiceNo string
	ItemID    uuid.UUID
	ItemName  string
	Qty       decimal.Decimal
	Purchase  decimal.Decimal
	Price     decimal.Decimal
	Amount    decimal.Decimal
}
