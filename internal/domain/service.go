package domain

// ServiceKind distinguishes capacity-pool services from room-inventory ones.
// The coordinator branches on it exhaustively instead of comparing free-form
// type strings.
type ServiceKind string

const (
	// KindSlotBased services sell seats out of a per-slot capacity pool.
	KindSlotBased ServiceKind = "slot_based"
	// KindUnitBased services allocate an individually numbered unit (a room)
	// with exclusive occupancy over a date range.
	KindUnitBased ServiceKind = "unit_based"
)

// Service is catalog data owned by an external CRUD surface. The engine reads
// it and treats it as immutable for the duration of an allocation decision.
type Service struct {
	ID              string
	EstablishmentID string
	Name            string
	Kind            ServiceKind
	BasePriceCents  int64
	DurationMinutes int
	Active          bool
}
