package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDelta is a signed change to an item's counters
type ItemDelta struct {
	Qty    decimal.Decimal
	InQty  decimal.Decimal
	OutQty decimal.Decimal
}

// StockInDelta is the change caused by receiving q units
func StockInDelta(q decimal.Decimal) ItemDelta {
	return ItemDelta{Qty: q, InQty: q, OutQty: decimal.Zero}
}

// ReturnDelta is the change caused by a customer returning q units.
// Returned units go back on hand and are taken off the outbound counter.
func ReturnDelta(q decimal.Decimal) ItemDelta {
	return ItemDelta{Qty: q, InQty: decimal.Zero, OutQty: q.Neg()}
}

// Inverse returns the delta that exactly undoes d
func (d ItemDelta) Inverse() ItemDelta {
	return ItemDelta{Qty: d.Qty.Neg(), InQty: d.InQty.Neg(), OutQty: d.OutQty.Neg()}
}

// Add combines two deltas
func (d ItemDelta) Add(o ItemDelta) ItemDelta {
	return ItemDelta{
		Qty:    d.Qty.Add(o.Qty),
		InQty:  d.InQty.Add(o.InQty),
		OutQty: d.OutQty.Add(o.OutQty),
	}
}

// IsZero reports whether applying d changes nothing
func (d ItemDelta) IsZero() bool {
	return d.Qty.IsZero() && d.InQty.IsZero() && d.OutQty.IsZero()
}

// ItemDeltaSet accumulates deltas per item
type ItemDeltaSet struct {
	deltas map[uuid.UUID]ItemDelta
}

// NewItemDeltaSet creates an empty set
func NewItemDeltaSet() *ItemDeltaSet {
	return &ItemDeltaSet{deltas: make(map[uuid.UUID]ItemDelta)}
}

// Add merges d into the pending delta of itemID
func (s *ItemDeltaSet) Add(itemID uuid.UUID, d ItemDelta) {
	cur, ok := s.deltas[itemID]
	if !ok {
		s.deltas[itemID] = d
		return
	}
	s.deltas[itemID] = cur.Add(d)
}

// Get returns the merged delta of itemID
func (s *ItemDeltaSet) Get(itemID uuid.UUID) (ItemDelta, bool) {
	d, ok := s.deltas[itemID]
	return d, ok
}

// Len returns the number of distinct items
func (s *ItemDeltaSet) Len() int {
	return len(s.deltas)
}

// ItemIDs returns the items in ascending id order. Applying deltas in this order
// makes concurrent movements lock item rows in the same sequence.
func (s *ItemDeltaSet) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.deltas))
	for id := range s.deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
