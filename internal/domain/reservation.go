package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusNoShow     ReservationStatus = "no_show"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCancelled, ReservationStatusCheckedOut, ReservationStatusNoShow:
		return true
	}
	return false
}

// Blocks reports whether a reservation in this status still blocks its unit's
// date range for new allocations. Cancellations and no-shows free the range;
// a checked-out reservation keeps blocking it, the stay was consumed.
func (s ReservationStatus) Blocks() bool {
	switch s {
	case ReservationStatusCancelled, ReservationStatusNoShow:
		return false
	}
	return true
}

// Occupies reports whether a reservation in this status still claims its unit
// now or in the future. Used when deciding if a unit can go back to available.
func (s ReservationStatus) Occupies() bool {
	return !s.IsTerminal()
}

// Reservation is the central entity. It is created only by the allocation
// coordinator, mutated only through lifecycle transitions, and never deleted:
// cancellation and no-show are terminal statuses, not removals.
type Reservation struct {
	ID        string
	ServiceID string
	SlotID    string
	UnitID    *string
	OwnerID   string

	// Quantity is the number of seats for slot-based services; it stays 1 for
	// unit-based reservations.
	Quantity int

	// CheckIn/CheckOut bound the stay for unit-based reservations, nil
	// otherwise. Nights is computed once at allocation.
	CheckIn  *time.Time
	CheckOut *time.Time
	Nights   int

	Status          ReservationStatus
	TotalPriceCents int64
	Extras          []ExtraSelection

	CreatedAt    time.Time
	UpdatedAt    time.Time
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
}

// Stay returns the reservation's date range when both dates are set.
func (r Reservation) Stay() (Stay, bool) {
	if r.CheckIn == nil || r.CheckOut == nil {
		return Stay{}, false
	}
	return Stay{CheckIn: *r.CheckIn, CheckOut: *r.CheckOut}, true
}
