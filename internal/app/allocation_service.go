package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/clock"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
	"github.com/Nicasiomarques/booking-host-sub000/internal/events"
)

// AllocationRepository is the storage surface the coordinator needs. All
// mutating reads take row locks; the WithTx closure brackets the whole
// check-and-mutate sequence in one transaction.
type AllocationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetService(ctx context.Context, id string) (domain.Service, error)
	GetSlotForUpdate(ctx context.Context, id string) (domain.Slot, error)
	GetExtra(ctx context.Context, id string) (domain.Extra, error)
	GetUnitForUpdate(ctx context.Context, id string) (domain.Unit, error)
	ListAvailableUnits(ctx context.Context, serviceID string) ([]domain.Unit, error)
	CountBlockingReservations(ctx context.Context, unitID string, stay domain.Stay) (int, error)
	UpdateSlotRemaining(ctx context.Context, slotID string, remaining int) error
	SetUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus) error
	CreateReservation(ctx context.Context, res domain.Reservation) error
}

// AllocationService is the only entry point that creates reservations. It
// validates the request against the catalog, checks availability under the
// targeted row's lock, prices the booking, and commits the reservation plus
// the ledger mutation atomically.
type AllocationService struct {
	repo      AllocationRepository
	clock     clock.Clock
	logger    *zap.Logger
	publisher events.Publisher
}

func NewAllocationService(repo AllocationRepository, clk clock.Clock, logger *zap.Logger, publisher events.Publisher) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NewNop()
	}
	return &AllocationService{
		repo:      repo,
		clock:     clk,
		logger:    logger,
		publisher: publisher,
	}
}

type ExtraInput struct {
	ExtraID  string
	Quantity int
}

type AllocateInput struct {
	ServiceID string
	SlotID    string
	OwnerID   string

	// Quantity of seats for slot-based services. Ignored defaulting to one
	// for unit-based services.
	Quantity int

	// UnitID requests a specific unit; empty lets the resolver pick the
	// first free one in number order.
	UnitID   string
	CheckIn  time.Time
	CheckOut time.Time

	Extras []ExtraInput

	// RequireConfirmation creates the reservation as pending so staff can
	// confirm it later, instead of the default auto-confirm.
	RequireConfirmation bool
}

// Allocate runs the full allocation: catalog validation, availability check
// under lock, pricing, and the atomic write. A second call with the same
// input creates a second reservation; there is no request deduplication.
func (s *AllocationService) Allocate(ctx context.Context, in AllocateInput) (domain.Reservation, error) {
	if in.ServiceID == "" || in.SlotID == "" {
		return domain.Reservation{}, domain.Validationf("service id and slot id are required")
	}
	if in.OwnerID == "" {
		return domain.Reservation{}, domain.Validationf("owner id is required")
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		svc, err := s.repo.GetService(txCtx, in.ServiceID)
		if err != nil {
			return err
		}
		if !svc.Active {
			return domain.Conflictf("service is not accepting reservations")
		}

		slot, err := s.repo.GetSlotForUpdate(txCtx, in.SlotID)
		if err != nil {
			return err
		}
		if slot.ServiceID != svc.ID {
			return domain.Validationf("slot does not belong to the service")
		}

		extras, err := s.resolveExtras(txCtx, svc, in.Extras)
		if err != nil {
			return err
		}

		res := domain.Reservation{
			ID:        uuid.NewString(),
			ServiceID: svc.ID,
			SlotID:    slot.ID,
			OwnerID:   in.OwnerID,
			Quantity:  1,
			Extras:    extras,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if in.RequireConfirmation {
			res.Status = domain.ReservationStatusPending
		} else {
			res.Status = domain.ReservationStatusConfirmed
			res.ConfirmedAt = &now
		}

		unitPrice := domain.UnitPriceCents(slot, svc)

		switch svc.Kind {
		case domain.KindSlotBased:
			if in.UnitID != "" {
				return domain.Validationf("unit selection only applies to unit-based services")
			}
			if in.Quantity < 1 {
				return domain.Validationf("quantity must be at least 1")
			}
			if slot.Remaining < in.Quantity {
				return domain.Conflictf("insufficient capacity: %d remaining on this slot", slot.Remaining)
			}
			if err := s.repo.UpdateSlotRemaining(txCtx, slot.ID, slot.Remaining-in.Quantity); err != nil {
				return err
			}
			res.Quantity = in.Quantity
			res.TotalPriceCents = domain.SlotTotalCents(unitPrice, in.Quantity, extras)

		case domain.KindUnitBased:
			if in.Quantity > 1 {
				return domain.Validationf("quantity is fixed to one for unit-based services")
			}
			stay := domain.Stay{CheckIn: in.CheckIn.UTC(), CheckOut: in.CheckOut.UTC()}
			if err := stay.Validate(now); err != nil {
				return err
			}
			unit, err := s.resolveUnit(txCtx, svc, in.UnitID, stay)
			if err != nil {
				return err
			}
			if err := s.repo.SetUnitStatus(txCtx, unit.ID, domain.UnitStatusOccupied); err != nil {
				return err
			}
			res.UnitID = &unit.ID
			res.CheckIn = &stay.CheckIn
			res.CheckOut = &stay.CheckOut
			res.Nights = stay.Nights()
			res.TotalPriceCents = domain.StayTotalCents(unitPrice, res.Nights, extras)

		default:
			return domain.Validationf("unknown service kind %q", string(svc.Kind))
		}

		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.logger.Info("reservation allocated",
		zap.String("reservation_id", result.ID),
		zap.String("service_id", result.ServiceID),
		zap.String("status", string(result.Status)),
		zap.Int64("total_price_cents", result.TotalPriceCents),
	)
	s.publish(ctx, events.TypeReservationCreated, result)
	return result, nil
}

// resolveExtras turns catalog references into price-at-booking snapshots.
func (s *AllocationService) resolveExtras(ctx context.Context, svc domain.Service, inputs []ExtraInput) ([]domain.ExtraSelection, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	selections := make([]domain.ExtraSelection, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, domain.Validationf("extra quantity must be at least 1")
		}
		if _, dup := seen[in.ExtraID]; dup {
			return nil, domain.Validationf("extra selected more than once")
		}
		seen[in.ExtraID] = struct{}{}

		extra, err := s.repo.GetExtra(ctx, in.ExtraID)
		if err != nil {
			return nil, err
		}
		if extra.ServiceID != svc.ID {
			return nil, domain.Validationf("extra %q does not belong to the service", extra.Name)
		}
		if !extra.Active {
			return nil, domain.Conflictf("extra %q is no longer available", extra.Name)
		}
		if in.Quantity > extra.MaxQuantity {
			return nil, domain.Validationf("extra %q allows at most %d per reservation", extra.Name, extra.MaxQuantity)
		}

		selections = append(selections, domain.ExtraSelection{
			ExtraID:    extra.ID,
			Name:       extra.Name,
			Quantity:   in.Quantity,
			PriceCents: extra.PriceCents,
		})
	}
	return selections, nil
}

// resolveUnit picks the unit for a stay. A requested unit must itself be free
// for the whole range; otherwise the first available unit in number order
// wins, so the pick is reproducible.
func (s *AllocationService) resolveUnit(ctx context.Context, svc domain.Service, requestedID string, stay domain.Stay) (domain.Unit, error) {
	if requestedID != "" {
		unit, err := s.repo.GetUnitForUpdate(ctx, requestedID)
		if err != nil {
			return domain.Unit{}, err
		}
		if unit.ServiceID != svc.ID {
			return domain.Unit{}, domain.Validationf("unit does not belong to the service")
		}
		if unit.Status != domain.UnitStatusAvailable {
			return domain.Unit{}, domain.Conflictf("unit %s is not available (%s)", unit.Number, unit.Status)
		}
		blocking, err := s.repo.CountBlockingReservations(ctx, unit.ID, stay)
		if err != nil {
			return domain.Unit{}, err
		}
		if blocking > 0 {
			return domain.Unit{}, domain.Conflictf("unit %s is already reserved for the requested dates", unit.Number)
		}
		return unit, nil
	}

	candidates, err := s.repo.ListAvailableUnits(ctx, svc.ID)
	if err != nil {
		return domain.Unit{}, err
	}
	for _, candidate := range candidates {
		// The list ran unlocked; lock the row and re-check before claiming,
		// a concurrent allocation may have taken the unit in between.
		unit, err := s.repo.GetUnitForUpdate(ctx, candidate.ID)
		if err != nil {
			return domain.Unit{}, err
		}
		if unit.Status != domain.UnitStatusAvailable {
			continue
		}
		blocking, err := s.repo.CountBlockingReservations(ctx, unit.ID, stay)
		if err != nil {
			return domain.Unit{}, err
		}
		if blocking > 0 {
			continue
		}
		return unit, nil
	}
	return domain.Unit{}, domain.Conflictf("no units available for the requested dates")
}

func (s *AllocationService) publish(ctx context.Context, eventType string, res domain.Reservation) {
	evt := events.FromReservation(eventType, res, s.clock.Now())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish reservation event failed",
			zap.String("type", eventType),
			zap.String("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}
