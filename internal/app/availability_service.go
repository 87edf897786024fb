package app

import (
	"context"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// AvailabilityRepository answers read-only availability queries outside any
// transaction; the results are a snapshot and may be stale by the time an
// allocation runs.
type AvailabilityRepository interface {
	GetService(ctx context.Context, id string) (domain.Service, error)
	GetSlot(ctx context.Context, id string) (domain.Slot, error)
	ListFreeUnits(ctx context.Context, serviceID string, stay domain.Stay) ([]domain.Unit, error)
}

type AvailabilityService struct {
	repo AvailabilityRepository
}

func NewAvailabilityService(repo AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// ListFreeUnits returns the units of a unit-based service that are available
// and carry no reservation blocking any part of the requested range.
func (s *AvailabilityService) ListFreeUnits(ctx context.Context, serviceID string, stay domain.Stay) ([]domain.Unit, error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.Kind != domain.KindUnitBased {
		return nil, domain.Validationf("availability by date range only applies to unit-based services")
	}
	if stay.CheckIn.IsZero() || stay.CheckOut.IsZero() {
		return nil, domain.Validationf("check-in and check-out dates are required")
	}
	if !stay.CheckOut.After(stay.CheckIn) {
		return nil, domain.Conflictf("check-out date must be after check-in date")
	}
	return s.repo.ListFreeUnits(ctx, serviceID, stay)
}

// SlotAvailability reports the remaining capacity of a single slot.
func (s *AvailabilityService) SlotAvailability(ctx context.Context, slotID string) (domain.Slot, error) {
	return s.repo.GetSlot(ctx, slotID)
}
