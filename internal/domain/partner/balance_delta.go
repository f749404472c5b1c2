package partner

import "github.com/shopspring/decimal"

// BalanceDelta is a signed change to a customer's running totals.
// The two fields always move in opposite directions by the same amount.
type BalanceDelta struct {
	ReturnAmount decimal.Decimal
	Remaining    decimal.Decimal
}

// ReturnRecordedDelta credits a return of total to the customer
func ReturnRecordedDelta(total decimal.Decimal) BalanceDelta {
	return BalanceDelta{ReturnAmount: total, Remaining: total.Neg()}
}

// Inverse returns the delta that exactly undoes d
func (d BalanceDelta) Inverse() BalanceDelta {
	return BalanceDelta{ReturnAmount: d.ReturnAmount.Neg(), Remaining: d.Remaining.Neg()}
}

// IsZero reports whether applying d changes nothing
func (d BalanceDelta) IsZero() bool {
	return d.ReturnAmount.IsZero() && d.Remaining.IsZero()
}

// Balanced reports whether the two fields cancel out
func (d BalanceDelta) Balanced() bool {
	return d.ReturnAmount.Add(d.Remaining).IsZero()
}
