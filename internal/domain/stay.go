package domain

import (
	"math"
	"time"
)

// DateFormat is the wire format for check-in/check-out dates.
const DateFormat = "2006-01-02"

// Stay is a half-open date range: check-in inclusive, check-out exclusive.
// Dates are calendar days held as UTC midnight.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Nights is the number of billable nights, ceil of the range length in days
// with a minimum of one.
func (s Stay) Nights() int {
	nights := int(math.Ceil(s.CheckOut.Sub(s.CheckIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Overlaps reports whether two half-open ranges intersect:
// [a1,a2) and [b1,b2) intersect iff a1 < b2 && b1 < a2. Back-to-back stays
// (check-out equals the next check-in) do not overlap.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// Validate checks the stay against "now". Missing dates are a validation
// error; a reversed range or a check-in already in the past are conflicts,
// matching how the rest of the lifecycle reports unsatisfiable requests.
func (s Stay) Validate(now time.Time) error {
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return Validationf("check-in and check-out dates are required")
	}
	if !s.CheckOut.After(s.CheckIn) {
		return Conflictf("check-out date must be after check-in date")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s.CheckIn.Before(today) {
		return Conflictf("check-in date is in the past")
	}
	return nil
}
