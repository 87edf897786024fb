package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

type LifecycleRepository struct {
	pool *pgxpool.Pool
}

func NewLifecycleRepository(pool *pgxpool.Pool) *LifecycleRepository {
	return &LifecycleRepository{pool: pool}
}

func (r *LifecycleRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetReservationForUpdate locks the reservation row for the rest of the
// transaction and returns it with its extra selections.
func (r *LifecycleRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	const query = `
SELECT id, service_id, slot_id, unit_id, owner_id, quantity,
       check_in, check_out, nights, status, total_price_cents,
       created_at, updated_at, confirmed_at, cancelled_at, checked_in_at, checked_out_at
FROM reservations
WHERE id = $1
FOR UPDATE`

	var res domain.Reservation
	err := r.queryRow(ctx, query, id).Scan(
		&res.ID, &res.ServiceID, &res.SlotID, &res.UnitID, &res.OwnerID, &res.Quantity,
		&res.CheckIn, &res.CheckOut, &res.Nights, &res.Status, &res.TotalPriceCents,
		&res.CreatedAt, &res.UpdatedAt, &res.ConfirmedAt, &res.CancelledAt, &res.CheckedInAt, &res.CheckedOutAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.Validationf("invalid reservation id")
		}
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.NotFound("reservation")
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}

	extras, err := r.listExtras(ctx, res.ID)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Extras = extras
	return res, nil
}

func (r *LifecycleRepository) GetService(ctx context.Context, id string) (domain.Service, error) {
	const query = `
SELECT id, establishment_id, name, kind, base_price_cents, duration_minutes, active
FROM services
WHERE id = $1`

	var s domain.Service
	err := r.queryRow(ctx, query, id).
		Scan(&s.ID, &s.EstablishmentID, &s.Name, &s.Kind, &s.BasePriceCents, &s.DurationMinutes, &s.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Service{}, domain.NotFound("service")
		}
		return domain.Service{}, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *LifecycleRepository) GetSlotForUpdate(ctx context.Context, id string) (domain.Slot, error) {
	const query = `
SELECT id, service_id, date, starts_at, ends_at, capacity, remaining, price_cents
FROM slots
WHERE id = $1
FOR UPDATE`

	var s domain.Slot
	err := r.queryRow(ctx, query, id).
		Scan(&s.ID, &s.ServiceID, &s.Date, &s.StartsAt, &s.EndsAt, &s.Capacity, &s.Remaining, &s.PriceCents)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Slot{}, domain.NotFound("slot")
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

func (r *LifecycleRepository) GetUnitForUpdate(ctx context.Context, id string) (domain.Unit, error) {
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

// CountActiveUnitReservations counts the non-terminal reservations that still
// claim the unit now or in the future. The empty exclude id matches nothing.
func (r *LifecycleRepository) CountActiveUnitReservations(ctx context.Context, unitID string, from time.Time, excludeReservationID string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM reservations
WHERE unit_id = $1
  AND status NOT IN ('cancelled', 'checked_out', 'no_show')
  AND check_out > $2
  AND id::text <> $3`

	var count int
	if err := r.queryRow(ctx, query, unitID, from, excludeReservationID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.Validationf("invalid unit id")
		}
		return 0, fmt.Errorf("count active unit reservations: %w", err)
	}
	return count, nil
}

func (r *LifecycleRepository) UpdateSlotRemaining(ctx context.Context, slotID string, remaining int) error {
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

func (r *LifecycleRepository) SetUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus) error {
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

func (r *LifecycleRepository) UpdateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
UPDATE reservations
SET status = $2,
    updated_at = $3,
    confirmed_at = $4,
    cancelled_at = $5,
    checked_in_at = $6,
    checked_out_at = $7
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		res.ID,
		res.Status,
		res.UpdatedAt,
		res.ConfirmedAt,
		res.CancelledAt,
		res.CheckedInAt,
		res.CheckedOutAt,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("reservation")
	}
	return nil
}

func (r *LifecycleRepository) listExtras(ctx context.Context, reservationID string) ([]domain.ExtraSelection, error) {
	const query = `
SELECT extra_id, name, quantity, price_cents
FROM reservation_extras
WHERE reservation_id = $1
ORDER BY name ASC`

	rows, err := r.query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list reservation extras: %w", err)
	}
	defer rows.Close()

	var extras []domain.ExtraSelection
	for rows.Next() {
		var sel domain.ExtraSelection
		if err := rows.Scan(&sel.ExtraID, &sel.Name, &sel.Quantity, &sel.PriceCents); err != nil {
			return nil, fmt.Errorf("scan reservation extra: %w", err)
		}
		extras = append(extras, sel)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservation extras: %w", rows.Err())
	}
	return extras, nil
}

func (r *LifecycleRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LifecycleRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *LifecycleRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
