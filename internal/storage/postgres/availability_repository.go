package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// AvailabilityRepository serves read-only queries straight off the pool.
// Callers get a consistent snapshot per statement, not a transaction.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

func (r *AvailabilityRepository) GetService(ctx context.Context, id string) (domain.Service, error) {
	const query = `
SELECT id, establishment_id, name, kind, base_price_cents, duration_minutes, active
FROM services
WHERE id = $1`

	var s domain.Service
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.EstablishmentID, &s.Name, &s.Kind, &s.BasePriceCents, &s.DurationMinutes, &s.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Service{}, domain.Validationf("invalid service id")
		}
		if err == pgx.ErrNoRows {
			return domain.Service{}, domain.NotFound("service")
		}
		return domain.Service{}, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *AvailabilityRepository) GetSlot(ctx context.Context, id string) (domain.Slot, error) {
	const query = `
SELECT id, service_id, date, starts_at, ends_at, capacity, remaining, price_cents
FROM slots
WHERE id = $1`

	var s domain.Slot
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.ServiceID, &s.Date, &s.StartsAt, &s.EndsAt, &s.Capacity, &s.Remaining, &s.PriceCents)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Slot{}, domain.Validationf("invalid slot id")
		}
		if err == pgx.ErrNoRows {
			return domain.Slot{}, domain.NotFound("slot")
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

// ListFreeUnits returns available units with no blocking reservation over the
// requested range, in number order.
func (r *AvailabilityRepository) ListFreeUnits(ctx context.Context, serviceID string, stay domain.Stay) ([]domain.Unit, error) {
	const query = `
SELECT u.id, u.service_id, u.number, u.status
FROM units u
WHERE u.service_id = $1
  AND u.status = 'available'
  AND NOT EXISTS (
	SELECT 1
	FROM reservations r
	WHERE r.unit_id = u.id
	  AND r.status NOT IN ('cancelled', 'no_show')
	  AND r.check_in < $3
	  AND r.check_out > $2
  )
ORDER BY u.number ASC, u.id ASC`

	rows, err := r.pool.Query(ctx, query, serviceID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.Validationf("invalid service id")
		}
		return nil, fmt.Errorf("list free units: %w", err)
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.ID, &u.ServiceID, &u.Number, &u.Status); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate units: %w", rows.Err())
	}
	return units, nil
}
