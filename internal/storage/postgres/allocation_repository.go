package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

type AllocationRepository struct {
	pool *pgxpool.Pool
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

func (r *AllocationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AllocationRepository) GetService(ctx context.Context, id string) (domain.Service, error) {
	const query = `
SELECT id, establishment_id, name, kind, base_price_cents, duration_minutes, active
FROM services
WHERE id = $1`

	var s domain.Service
	err := r.queryRow(ctx, query, id).
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

func (r *AllocationRepository) GetSlotForUpdate(ctx context.Context, id string) (domain.Slot, error) {
	const query = `
SELECT id, service_id, date, starts_at, ends_at, capacity, remaining, price_cents
FROM slots
WHERE id = $1
FOR UPDATE`

	var s domain.Slot
	err := r.queryRow(ctx, query, id).
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

func (r *AllocationRepository) GetExtra(ctx context.Context, id string) (domain.Extra, error) {
	const query = `
SELECT id, service_id, name, price_cents, max_quantity, active
FROM extras
WHERE id = $1`

	var e domain.Extra
	err := r.queryRow(ctx, query, id).
		Scan(&e.ID, &e.ServiceID, &e.Name, &e.PriceCents, &e.MaxQuantity, &e.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Extra{}, domain.Validationf("invalid extra id")
		}
		if err == pgx.ErrNoRows {
			return domain.Extra{}, domain.NotFound("extra")
		}
		return domain.Extra{}, fmt.Errorf("get extra: %w", err)
	}
	return e, nil
}

func (r *AllocationRepository) GetUnitForUpdate(ctx context.Context, id string) (domain.Unit, error) {
	const query = `
SELECT id, service_id, number, status
FROM units
WHERE id = $1
FOR UPDATE`

	var u domain.Unit
	err := r.queryRow(ctx, query, id).Scan(&u.ID, &u.ServiceID, &u.Number, &u.Status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Unit{}, domain.Validationf("invalid unit id")
		}
		if err == pgx.ErrNoRows {
			return domain.Unit{}, domain.NotFound("unit")
		}
		return domain.Unit{}, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (r *AllocationRepository) ListAvailableUnits(ctx context.Context, serviceID string) ([]domain.Unit, error) {
	const query = `
SELECT id, service_id, number, status
FROM units
WHERE service_id = $1 AND status = 'available'
ORDER BY number ASC, id ASC`

	rows, err := r.query(ctx, query, serviceID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.Validationf("invalid service id")
		}
		return nil, fmt.Errorf("list available units: %w", err)
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

// CountBlockingReservations counts reservations on the unit whose date range
// intersects the stay, ignoring cancelled and no-show ones. Ranges are
// half-open, so back-to-back stays do not count.
func (r *AllocationRepository) CountBlockingReservations(ctx context.Context, unitID string, stay domain.Stay) (int, error) {
	const query = `
SELECT COUNT(*)
FROM reservations
WHERE unit_id = $1
  AND status NOT IN ('cancelled', 'no_show')
  AND check_in < $3
  AND check_out > $2`

	var count int
	if err := r.queryRow(ctx, query, unitID, stay.CheckIn, stay.CheckOut).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.Validationf("invalid unit id")
		}
		return 0, fmt.Errorf("count blocking reservations: %w", err)
	}
	return count, nil
}

func (r *AllocationRepository) UpdateSlotRemaining(ctx context.Context, slotID string, remaining int) error {
	const stmt = `UPDATE slots SET remaining = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, slotID, remaining)
	if err != nil {
		if isCheckViolation(err) {
			return domain.LedgerCorruptionf("slot %s remaining %d is out of bounds", slotID, remaining)
		}
		return fmt.Errorf("update slot remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("slot")
	}
	return nil
}

func (r *AllocationRepository) SetUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus) error {
	const stmt = `UPDATE units SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, unitID, status)
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("unit")
	}
	return nil
}

func (r *AllocationRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (
	id, service_id, slot_id, unit_id, owner_id, quantity,
	check_in, check_out, nights, status, total_price_cents,
	created_at, updated_at, confirmed_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.ServiceID,
		res.SlotID,
		res.UnitID,
		res.OwnerID,
		res.Quantity,
		res.CheckIn,
		res.CheckOut,
		res.Nights,
		res.Status,
		res.TotalPriceCents,
		res.CreatedAt,
		res.UpdatedAt,
		res.ConfirmedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("referenced resource")
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	const extraStmt = `
INSERT INTO reservation_extras (reservation_id, extra_id, name, quantity, price_cents)
VALUES ($1, $2, $3, $4, $5)`

	for _, sel := range res.Extras {
		if _, err := r.exec(ctx, extraStmt, res.ID, sel.ExtraID, sel.Name, sel.Quantity, sel.PriceCents); err != nil {
			if isUniqueViolation(err) {
				return domain.Validationf("extra selected more than once")
			}
			return fmt.Errorf("create reservation extra: %w", err)
		}
	}
	return nil
}

func (r *AllocationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AllocationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *AllocationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
