package events

import (
	"time"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// Event type names, one per lifecycle outcome.
const (
	TypeReservationCreated    = "reservation.created"
	TypeReservationConfirmed  = "reservation.confirmed"
	TypeReservationCancelled  = "reservation.cancelled"
	TypeReservationCheckedIn  = "reservation.checked_in"
	TypeReservationCheckedOut = "reservation.checked_out"
	TypeReservationNoShow     = "reservation.no_show"
)

// ReservationEvent is the payload published after a reservation commit.
// Messages are keyed by reservation id so all events for one reservation land
// on the same partition, in order.
type ReservationEvent struct {
	Type            string    `json:"type"`
	ReservationID   string    `json:"reservation_id"`
	ServiceID       string    `json:"service_id"`
	SlotID          string    `json:"slot_id"`
	UnitID          *string   `json:"unit_id,omitempty"`
	OwnerID         string    `json:"owner_id"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// FromReservation builds the event payload for a committed reservation state.
func FromReservation(eventType string, res domain.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:            eventType,
		ReservationID:   res.ID,
		ServiceID:       res.ServiceID,
		SlotID:          res.SlotID,
		UnitID:          res.UnitID,
		OwnerID:         res.OwnerID,
		Status:          string(res.Status),
		TotalPriceCents: res.TotalPriceCents,
		OccurredAt:      at,
	}
}

// TypeForEvent maps a lifecycle event to its published event type.
func TypeForEvent(event domain.LifecycleEvent) string {
	switch event {
	case domain.EventConfirm:
		return TypeReservationConfirmed
	case domain.EventCancel:
		return TypeReservationCancelled
	case domain.EventCheckIn:
		return TypeReservationCheckedIn
	case domain.EventCheckOut:
		return TypeReservationCheckedOut
	case domain.EventNoShow:
		return TypeReservationNoShow
	}
	return "reservation." + string(event)
}
