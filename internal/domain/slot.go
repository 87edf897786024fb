package domain

import "time"

// Slot is a time-boxed capacity pool for one service. Remaining is the
// authoritative counter: 0 <= Remaining <= Capacity at all times, and it is
// only ever mutated under the slot's row lock inside a transaction.
//
// Unit-based services also carry a slot row; it holds the nightly price
// override and its capacity is never decremented.
type Slot struct {
	ID         string
	ServiceID  string
	Date       time.Time
	StartsAt   time.Time
	EndsAt     time.Time
	Capacity   int
	Remaining  int
	PriceCents *int64
}
