package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStockParams() StockEntryParams {
	return StockEntryParams{
		BranchID:     uuid.New(),
		BranchName:   "Main",
		BranchNumber: 1,
		ArticleID:    uuid.New(),
		ArticleName:  "Polo",
		ItemID:       uuid.New(),
		Size:         "M",
		Qty:          decimal.NewFromInt(5),
		Purchase:     decimal.NewFromInt(100),
		InvoiceNo:    "INV-1",
		TruckNo:      "TRK-9",
		Date:         time.Unix(1_700_000_000, 500),
		Description:  "weekly delivery",
	}
}

func TestNewStockEntry(t *testing.T) {
	t.Run("computes total and normalises date", func(t *testing.T) {
		entry, err := NewStockEntry(validStockParams())

		require.NoError(t, err)
		assert.True(t, entry.TotalAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(1_700_000_000), entry.Date)
		assert.True(t, entry.Delta().InQty.Equal(decimal.NewFromInt(5)))
	})

	t.Run("zero purchase is allowed", func(t *testing.T) {
		p := validStockParams()
		p.Purchase = decimal.Zero
		entry, err := NewStockEntry(p)

		require.NoError(t, err)
		assert.True(t, entry.TotalAmount.IsZero())
	})

	t.Run("fractional total is kept at the stored scale", func(t *testing.T) {
		p := validStockParams()
		p.Qty = decimal.RequireFromString("0.3333")
		p.Purchase = decimal.RequireFromString("0.3333")
		entry, err := NewStockEntry(p)

		require.NoError(t, err)
		assert.Equal(t, "0.1111", entry.TotalAmount.String())
	})

	tests := []struct {
		name   string
		mutate func(*StockEntryParams)
	}{
		{"qty beyond four decimal places", func(p *StockEntryParams) { p.Qty = decimal.RequireFromString("1.00001") }},
		{"purchase beyond four decimal places", func(p *StockEntryParams) { p.Purchase = decimal.RequireFromString("9.99999") }},
		{"zero qty", func(p *StockEntryParams) { p.Qty = decimal.Zero }},
		{"negative qty", func(p *StockEntryParams) { p.Qty = decimal.NewFromInt(-1) }},
		{"negative purchase", func(p *StockEntryParams) { p.Purchase = decimal.NewFromInt(-1) }},
		{"missing item", func(p *StockEntryParams) { p.ItemID = uuid.Nil }},
		{"missing branch", func(p *StockEntryParams) { p.BranchID = uuid.Nil }},
		{"missing date", func(p *StockEntryParams) { p.Date = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validStockParams()
			tt.mutate(&p)
			entry, err := NewStockEntry(p)

			assert.Nil(t, entry)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}
