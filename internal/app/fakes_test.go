package app

import (
	"context"
	"sort"
	"time"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
	"github.com/Nicasiomarques/booking-host-sub000/internal/events"
)

// fakeStore implements the allocation, lifecycle, and availability
// repositories over in-memory maps. WithTx runs the closure directly; the
// tests never rely on rollback.
type fakeStore struct {
	services     map[string]domain.Service
	slots        map[string]domain.Slot
	units        map[string]domain.Unit
	extras       map[string]domain.Extra
	reservations map[string]domain.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		services:     make(map[string]domain.Service),
		slots:        make(map[string]domain.Slot),
		units:        make(map[string]domain.Unit),
		extras:       make(map[string]domain.Extra),
		reservations: make(map[string]domain.Reservation),
	}
}

func (f *fakeStore) addService(svc domain.Service) { f.services[svc.ID] = svc }
func (f *fakeStore) addSlot(slot domain.Slot)      { f.slots[slot.ID] = slot }
func (f *fakeStore) addUnit(unit domain.Unit)      { f.units[unit.ID] = unit }
func (f *fakeStore) addExtra(extra domain.Extra)   { f.extras[extra.ID] = extra }
func (f *fakeStore) addReservation(res domain.Reservation) {
	f.reservations[res.ID] = res
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) GetService(_ context.Context, id string) (domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return domain.Service{}, domain.NotFound("service")
	}
	return svc, nil
}

func (f *fakeStore) GetSlot(_ context.Context, id string) (domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return domain.Slot{}, domain.NotFound("slot")
	}
	return slot, nil
}

func (f *fakeStore) GetSlotForUpdate(ctx context.Context, id string) (domain.Slot, error) {
	return f.GetSlot(ctx, id)
}

func (f *fakeStore) GetExtra(_ context.Context, id string) (domain.Extra, error) {
	extra, ok := f.extras[id]
	if !ok {
		return domain.Extra{}, domain.NotFound("extra")
	}
	return extra, nil
}

func (f *fakeStore) GetUnitForUpdate(_ context.Context, id string) (domain.Unit, error) {
	unit, ok := f.units[id]
	if !ok {
		return domain.Unit{}, domain.NotFound("unit")
	}
	return unit, nil
}

func (f *fakeStore) GetReservationForUpdate(_ context.Context, id string) (domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.NotFound("reservation")
	}
	return res, nil
}

func (f *fakeStore) ListAvailableUnits(_ context.Context, serviceID string) ([]domain.Unit, error) {
	var units []domain.Unit
	for _, unit := range f.units {
		if unit.ServiceID == serviceID && unit.Status == domain.UnitStatusAvailable {
			units = append(units, unit)
		}
	}
	sortUnits(units)
	return units, nil
}

func (f *fakeStore) ListFreeUnits(ctx context.Context, serviceID string, stay domain.Stay) ([]domain.Unit, error) {
	available, err := f.ListAvailableUnits(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	var free []domain.Unit
	for _, unit := range available {
		blocking, err := f.CountBlockingReservations(ctx, unit.ID, stay)
		if err != nil {
			return nil, err
		}
		if blocking == 0 {
			free = append(free, unit)
		}
	}
	return free, nil
}

func (f *fakeStore) CountBlockingReservations(_ context.Context, unitID string, stay domain.Stay) (int, error) {
	count := 0
	for _, res := range f.reservations {
		if res.UnitID == nil || *res.UnitID != unitID {
			continue
		}
		if !res.Status.Blocks() {
			continue
		}
		existing, ok := res.Stay()
		if !ok {
			continue
		}
		if existing.Overlaps(stay) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountActiveUnitReservations(_ context.Context, unitID string, from time.Time, excludeReservationID string) (int, error) {
	count := 0
	for _, res := range f.reservations {
		if res.ID == excludeReservationID {
			continue
		}
		if res.UnitID == nil || *res.UnitID != unitID {
			continue
		}
		if res.Status.IsTerminal() {
			continue
		}
		if res.CheckOut == nil || !res.CheckOut.After(from) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeStore) UpdateSlotRemaining(_ context.Context, slotID string, remaining int) error {
	slot, ok := f.slots[slotID]
	if !ok {
		return domain.NotFound("slot")
	}
	slot.Remaining = remaining
	f.slots[slotID] = slot
	return nil
}

func (f *fakeStore) SetUnitStatus(_ context.Context, unitID string, status domain.UnitStatus) error {
	unit, ok := f.units[unitID]
	if !ok {
		return domain.NotFound("unit")
	}
	unit.Status = status
	f.units[unitID] = unit
	return nil
}

func (f *fakeStore) CreateReservation(_ context.Context, res domain.Reservation) error {
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeStore) UpdateReservation(_ context.Context, res domain.Reservation) error {
	if _, ok := f.reservations[res.ID]; !ok {
		return domain.NotFound("reservation")
	}
	f.reservations[res.ID] = res
	return nil
}

func sortUnits(units []domain.Unit) {
	sort.Slice(units, func(i, j int) bool {
		if units[i].Number != units[j].Number {
			return units[i].Number < units[j].Number
		}
		return units[i].ID < units[j].ID
	})
}

// fakePublisher records published events, or fails every publish when err is
// set.
type fakePublisher struct {
	published []events.ReservationEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, evt events.ReservationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, evt)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
