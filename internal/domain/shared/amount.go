package shared

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places stored for every quantity,
// price and counter.
const AmountScale = 4

// CheckScale rejects values the store would have to round, which would let a
// ledger amount drift from the counter delta it produced.
func CheckScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(AmountScale)) {
		return NewValidationError(field + " cannot have more than 4 decimal places")
	}
	return nil
}
