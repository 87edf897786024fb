package domain

// UnitStatus is the administrative/occupancy state of a unit. It is derived
// state: allocation and release recompute it, and staff can override it to
// take a unit out of service.
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusBlocked     UnitStatus = "blocked"
	UnitStatusCleaning    UnitStatus = "cleaning"
)

// ParseUnitStatus validates a status string coming from an override request.
func ParseUnitStatus(s string) (UnitStatus, error) {
	switch UnitStatus(s) {
	case UnitStatusAvailable, UnitStatusOccupied, UnitStatusMaintenance, UnitStatusBlocked, UnitStatusCleaning:
		return UnitStatus(s), nil
	}
	return "", Validationf("unknown unit status %q", s)
}

// Unit is an individually numbered resource (a hotel room) with exclusive
// occupancy per date range. A unit may be allocated only when its status is
// available and no blocking reservation overlaps the requested stay.
type Unit struct {
	ID        string
	ServiceID string
	Number    string
	Status    UnitStatus
}
