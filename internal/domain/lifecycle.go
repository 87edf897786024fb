package domain

// LifecycleEvent names a reservation transition requested by a caller.
type LifecycleEvent string

const (
	EventConfirm  LifecycleEvent = "confirm"
	EventCancel   LifecycleEvent = "cancel"
	EventCheckIn  LifecycleEvent = "check_in"
	EventCheckOut LifecycleEvent = "check_out"
	EventNoShow   LifecycleEvent = "no_show"
)

// ReleasesResources reports whether applying the event hands capacity (or the
// unit) back to the ledger.
func (e LifecycleEvent) ReleasesResources() bool {
	switch e {
	case EventCancel, EventCheckOut, EventNoShow:
		return true
	}
	return false
}

// Transition validates event against the reservation's current status and the
// service kind, returning the target status. Every rejected transition is a
// conflict whose message names the state that blocked it, because the message
// is shown to end users as-is.
//
// Check-in, check-out and no-show only exist for unit-based services. Direct
// check-out from confirmed, without a prior check-in, is allowed. A checked-in
// reservation can never become a no-show.
func Transition(status ReservationStatus, kind ServiceKind, event LifecycleEvent) (ReservationStatus, error) {
	switch event {
	case EventConfirm:
		return transitionConfirm(status)
	case EventCancel:
		return transitionCancel(status)
	case EventCheckIn:
		if kind != KindUnitBased {
			return "", Conflictf("check-in is not available for this service type")
		}
		return transitionCheckIn(status)
	case EventCheckOut:
		if kind != KindUnitBased {
			return "", Conflictf("check-out is not available for this service type")
		}
		return transitionCheckOut(status)
	case EventNoShow:
		if kind != KindUnitBased {
			return "", Conflictf("no-show is not available for this service type")
		}
		return transitionNoShow(status)
	}
	return "", Validationf("unknown lifecycle event %q", string(event))
}

func transitionConfirm(status ReservationStatus) (ReservationStatus, error) {
	switch status {
	case ReservationStatusPending:
		return ReservationStatusConfirmed, nil
	case ReservationStatusConfirmed:
		return "", Conflictf("reservation is already confirmed")
	case ReservationStatusCheckedIn:
		return "", Conflictf("reservation is already checked in")
	}
	return "", terminalConflict(status)
}

func transitionCancel(status ReservationStatus) (ReservationStatus, error) {
	switch status {
	case ReservationStatusPending, ReservationStatusConfirmed:
		return ReservationStatusCancelled, nil
	case ReservationStatusCancelled:
		return "", Conflictf("reservation is already cancelled")
	case ReservationStatusCheckedIn:
		return "", Conflictf("cannot cancel a checked-in reservation")
	}
	return "", terminalConflict(status)
}

func transitionCheckIn(status ReservationStatus) (ReservationStatus, error) {
	switch status {
	case ReservationStatusConfirmed:
		return ReservationStatusCheckedIn, nil
	case ReservationStatusPending:
		return "", Conflictf("reservation is not confirmed yet")
	case ReservationStatusCheckedIn:
		return "", Conflictf("reservation is already checked in")
	}
	return "", terminalConflict(status)
}

func transitionCheckOut(status ReservationStatus) (ReservationStatus, error) {
	switch status {
	// Direct check-out from confirmed is deliberate: front desks close out
	// stays whose check-in was never recorded.
	case ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return ReservationStatusCheckedOut, nil
	case ReservationStatusPending:
		return "", Conflictf("reservation is not confirmed yet")
	}
	return "", terminalConflict(status)
}

func transitionNoShow(status ReservationStatus) (ReservationStatus, error) {
	switch status {
	case ReservationStatusConfirmed:
		return ReservationStatusNoShow, nil
	case ReservationStatusPending:
		return "", Conflictf("reservation is not confirmed yet")
	case ReservationStatusCheckedIn:
		return "", Conflictf("cannot mark a checked-in reservation as no-show")
	}
	return "", terminalConflict(status)
}

func terminalConflict(status ReservationStatus) error {
	switch status {
	case ReservationStatusCancelled:
		return Conflictf("reservation is cancelled")
	case ReservationStatusCheckedOut:
		return Conflictf("reservation is already checked out")
	case ReservationStatusNoShow:
		return Conflictf("reservation was marked as no-show")
	}
	return Conflictf("reservation is in state %q", string(status))
}
