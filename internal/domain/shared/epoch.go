package shared

import "time"

// EpochSeconds truncates t to whole seconds since the Unix epoch.
// Every timestamp stored on a ledger record goes through here.
func EpochSeconds(t time.Time) int64 {
	return t.Unix()
}

// EpochRange is an inclusive [From, To] window in epoch seconds
type EpochRange struct {
	From int64
	To   int64
}

// NewEpochRange builds a range, defaulting a zero upper bound to now
func NewEpochRange(from, to int64, now time.Time) (EpochRange, error) {
	if to == 0 {
		to = EpochSeconds(now)
	}
	if from < 0 {
		return EpochRange{}, NewValidationError("Start date cannot be negative")
	}
	if to < from {
		return EpochRange{}, NewValidationError("End date must not be before start date")
	}
	return EpochRange{From: from, To: to}, nil
}

// Contains reports whether ts lies inside the range, bounds included
func (r EpochRange) Contains(ts int64) bool {
	return ts >= r.From && ts <= r.To
}
