package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/clock"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
	"github.com/Nicasiomarques/booking-host-sub000/internal/events"
)

// LifecycleRepository is the storage surface for reservation transitions and
// unit status overrides. GetReservationForUpdate locks the reservation row
// and returns it with its extra selections loaded.
type LifecycleRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	GetService(ctx context.Context, id string) (domain.Service, error)
	GetSlotForUpdate(ctx context.Context, id string) (domain.Slot, error)
	GetUnitForUpdate(ctx context.Context, id string) (domain.Unit, error)
	CountActiveUnitReservations(ctx context.Context, unitID string, from time.Time, excludeReservationID string) (int, error)
	UpdateSlotRemaining(ctx context.Context, slotID string, remaining int) error
	SetUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus) error
	UpdateReservation(ctx context.Context, res domain.Reservation) error
}

// LifecycleService drives reservations through their state machine and keeps
// the capacity ledger consistent with every transition. Releasing events
// (cancel, check-out, no-show) hand capacity back inside the same
// transaction that records the new status.
type LifecycleService struct {
	repo      LifecycleRepository
	clock     clock.Clock
	logger    *zap.Logger
	publisher events.Publisher
}

func NewLifecycleService(repo LifecycleRepository, clk clock.Clock, logger *zap.Logger, publisher events.Publisher) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NewNop()
	}
	return &LifecycleService{
		repo:      repo,
		clock:     clk,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *LifecycleService) Confirm(ctx context.Context, reservationID string, actor Actor) (domain.Reservation, error) {
	return s.apply(ctx, reservationID, actor, domain.EventConfirm)
}

func (s *LifecycleService) Cancel(ctx context.Context, reservationID string, actor Actor) (domain.Reservation, error) {
	return s.apply(ctx, reservationID, actor, domain.EventCancel)
}

func (s *LifecycleService) CheckIn(ctx context.Context, reservationID string, actor Actor) (domain.Reservation, error) {
	return s.apply(ctx, reservationID, actor, domain.EventCheckIn)
}

func (s *LifecycleService) CheckOut(ctx context.Context, reservationID string, actor Actor) (domain.Reservation, error) {
	return s.apply(ctx, reservationID, actor, domain.EventCheckOut)
}

func (s *LifecycleService) MarkNoShow(ctx context.Context, reservationID string, actor Actor) (domain.Reservation, error) {
	return s.apply(ctx, reservationID, actor, domain.EventNoShow)
}

// apply is the single transition path. It locks the reservation, authorizes
// the actor, validates the transition against the state machine, releases
// resources for releasing events, and persists the result atomically. The
// matching event is published after commit.
func (s *LifecycleService) apply(ctx context.Context, reservationID string, actor Actor, event domain.LifecycleEvent) (domain.Reservation, error) {
	if reservationID == "" {
		return domain.Reservation{}, domain.Validationf("reservation id is required")
	}

	now := s.clock.Now()
	var result domain.Reservation
	var corruption error

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if err := s.authorize(actor, res, event); err != nil {
			return err
		}

		svc, err := s.repo.GetService(txCtx, res.ServiceID)
		if err != nil {
			return err
		}

		next, err := domain.Transition(res.Status, svc.Kind, event)
		if err != nil {
			return err
		}

		res.Status = next
		res.UpdatedAt = now
		stampTransition(&res, event, now)

		if event.ReleasesResources() {
			if err := s.release(txCtx, svc, res, now, &corruption); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateReservation(txCtx, res); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.logger.Info("reservation transition applied",
		zap.String("reservation_id", result.ID),
		zap.String("event", string(event)),
		zap.String("status", string(result.Status)),
	)
	s.publish(ctx, events.TypeForEvent(event), result)

	// The clamp already committed; surface the corrupted ledger to the
	// caller so it is not silently absorbed.
	if corruption != nil {
		s.logger.Error("slot ledger corruption detected on release",
			zap.String("reservation_id", result.ID),
			zap.Error(corruption),
		)
		return result, corruption
	}
	return result, nil
}

// OverrideUnitStatus lets staff force a unit into any operational status.
// Forcing a unit back to available is refused while reservations still claim
// it, so an occupied room cannot be double-sold by accident.
func (s *LifecycleService) OverrideUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus, actor Actor) (domain.Unit, error) {
	if !actor.IsStaff() {
		return domain.Unit{}, domain.Forbiddenf("staff role required to change unit status")
	}
	parsed, err := domain.ParseUnitStatus(string(status))
	if err != nil {
		return domain.Unit{}, err
	}

	now := s.clock.Now()
	var result domain.Unit

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		unit, err := s.repo.GetUnitForUpdate(txCtx, unitID)
		if err != nil {
			return err
		}
		if parsed == domain.UnitStatusAvailable {
			claims, err := s.repo.CountActiveUnitReservations(txCtx, unit.ID, now, "")
			if err != nil {
				return err
			}
			if claims > 0 {
				return domain.Conflictf("unit %s is in use: %d active reservation(s) still target it", unit.Number, claims)
			}
		}
		if err := s.repo.SetUnitStatus(txCtx, unit.ID, parsed); err != nil {
			return err
		}
		unit.Status = parsed
		result = unit
		return nil
	})
	if err != nil {
		return domain.Unit{}, err
	}

	s.logger.Info("unit status overridden",
		zap.String("unit_id", result.ID),
		zap.String("status", string(result.Status)),
		zap.String("actor_id", actor.ID),
	)
	return result, nil
}

// authorize enforces who may fire which event: owners can cancel their own
// reservations, everything else is staff-only.
func (s *LifecycleService) authorize(actor Actor, res domain.Reservation, event domain.LifecycleEvent) error {
	if actor.ID == "" {
		return domain.Forbiddenf("actor identity is required")
	}
	if event == domain.EventCancel {
		if actor.IsStaff() || actor.ID == res.OwnerID {
			return nil
		}
		return domain.Forbiddenf("only the reservation owner or staff can cancel")
	}
	if !actor.IsStaff() {
		return domain.Forbiddenf("staff role required to %s a reservation", strings.ReplaceAll(string(event), "_", "-"))
	}
	return nil
}

// release hands resources back for a releasing transition. Slot capacity is
// clamped rather than pushed past the configured maximum; the clamp is
// reported through corruption after the transaction commits.
func (s *LifecycleService) release(ctx context.Context, svc domain.Service, res domain.Reservation, now time.Time, corruption *error) error {
	switch svc.Kind {
	case domain.KindSlotBased:
		slot, err := s.repo.GetSlotForUpdate(ctx, res.SlotID)
		if err != nil {
			return err
		}
		remaining := slot.Remaining + res.Quantity
		if remaining > slot.Capacity {
			*corruption = domain.LedgerCorruptionf(
				"releasing reservation %s would raise slot %s to %d/%d, remaining clamped to capacity",
				res.ID, slot.ID, remaining, slot.Capacity,
			)
			remaining = slot.Capacity
		}
		return s.repo.UpdateSlotRemaining(ctx, slot.ID, remaining)

	case domain.KindUnitBased:
		if res.UnitID == nil {
			return nil
		}
		unit, err := s.repo.GetUnitForUpdate(ctx, *res.UnitID)
		if err != nil {
			return err
		}
		// Manual overrides (maintenance, blocked, cleaning) survive a
		// release; only an occupied unit is recomputed.
		if unit.Status != domain.UnitStatusOccupied {
			return nil
		}
		claims, err := s.repo.CountActiveUnitReservations(ctx, unit.ID, now, res.ID)
		if err != nil {
			return err
		}
		if claims > 0 {
			return nil
		}
		return s.repo.SetUnitStatus(ctx, unit.ID, domain.UnitStatusAvailable)
	}
	return nil
}

func stampTransition(res *domain.Reservation, event domain.LifecycleEvent, at time.Time) {
	switch event {
	case domain.EventConfirm:
		res.ConfirmedAt = &at
	case domain.EventCancel:
		res.CancelledAt = &at
	case domain.EventCheckIn:
		res.CheckedInAt = &at
	case domain.EventCheckOut:
		res.CheckedOutAt = &at
	}
}

func (s *LifecycleService) publish(ctx context.Context, eventType string, res domain.Reservation) {
	evt := events.FromReservation(eventType, res, s.clock.Now())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish reservation event failed",
			zap.String("type", eventType),
			zap.String("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}
