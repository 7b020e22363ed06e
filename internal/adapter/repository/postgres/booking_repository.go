package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

const bookingColumns = `b.id, b.user_id, b.yurt_id, b.start_date, b.end_date, b.total_price, b.status, b.created_at, b.updated_at`

// overlapQuery is the half-open intersection test: start < other.end AND end > other.start.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE yurt_id = $1
		  AND status <> 'CANCELLED'
		  AND start_date < $3
		  AND end_date > $2
		  AND ($4::uuid IS NULL OR id <> $4)
	)
	`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.YurtID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("booking %s not found", bookingID)
		}
		return nil, mapError(err, "get booking")
	}
	return booking, nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, yurtID uuid.UUID, stay domain.DateRange, exclude *uuid.UUID) (bool, error) {
	var taken bool
	if err := r.db.QueryRowContext(ctx, overlapQuery, yurtID, stay.Start, stay.End, exclude).Scan(&taken); err != nil {
		return false, mapError(err, "check booking overlap")
	}
	return taken, nil
}

// lockYurt serializes writers of one yurt's schedule for the rest of tx.
func lockYurt(ctx context.Context, tx *sql.Tx, yurtID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRowContext(ctx, `SELECT id FROM yurts WHERE id = $1 FOR UPDATE`, yurtID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("yurt %s not found", yurtID)
	}
	return err
}

func checkFree(ctx context.Context, tx *sql.Tx, b *domain.Booking, exclude *uuid.UUID) error {
	var taken bool
	if err := tx.QueryRowContext(ctx, overlapQuery, b.YurtID, b.StartDate, b.EndDate, exclude).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return domain.NewConflict("yurt is already booked for the requested dates")
	}
	return nil
}

// Create re-checks availability and inserts the booking in one transaction
// while holding the yurt row lock, so two concurrent requests for the same
// dates cannot both succeed.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockYurt(ctx, tx, booking.YurtID); err != nil {
			return err
		}

		if err := checkFree(ctx, tx, booking, nil); err != nil {
			return err
		}

		query := `
		INSERT INTO bookings (id, user_id, yurt_id, start_date, end_date, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.ExecContext(ctx, query,
			booking.ID,
			booking.UserID,
			booking.YurtID,
			booking.StartDate,
			booking.EndDate,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		return err
	})
	return mapError(err, "create booking")
}

func (r *BookingRepository) UpdateSchedule(ctx context.Context, booking *domain.Booking) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockYurt(ctx, tx, booking.YurtID); err != nil {
			return err
		}

		if err := checkFree(ctx, tx, booking, &booking.ID); err != nil {
			return err
		}

		query := `
		UPDATE bookings
		SET start_date = $1, end_date = $2, total_price = $3, updated_at = $4
		WHERE id = $5 AND status IN ('PENDING', 'CONFIRMED')
		`

		res, err := tx.ExecContext(ctx, query, booking.StartDate, booking.EndDate, booking.TotalPrice, booking.UpdatedAt, booking.ID)
		if err != nil {
			return err
		}
		return expectOne(res, domain.NewConflict("booking %s was modified concurrently", booking.ID))
	})
	return mapError(err, "update booking dates")
}

// UpdateStatus only applies when the stored status is still from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = $3
	`

	res, err := r.db.ExecContext(ctx, query, to, bookingID, from)
	if err != nil {
		return mapError(err, "update booking status")
	}
	return expectOne(res, domain.NewConflict("booking %s was modified concurrently", bookingID))
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return mapError(err, "delete booking")
	}
	return expectOne(res, domain.NewNotFound("booking %s not found", bookingID))
}

func bookingWhere(filter domain.BookingFilter) *where {
	w := &where{}
	if filter.UserID != uuid.Nil {
		w.add("b.user_id = ?", filter.UserID)
	}
	if filter.YurtID != uuid.Nil {
		w.add("b.yurt_id = ?", filter.YurtID)
	}
	if filter.Status != "" {
		w.add("b.status = ?", filter.Status)
	}
	return w
}

// List returns up to limit bookings, newest first, strictly after the
// booking named by after.
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter, after *uuid.UUID, limit int) ([]domain.Booking, error) {
	w := bookingWhere(filter)
	if after != nil {
		w.add("(b.created_at, b.id) < (SELECT created_at, id FROM bookings WHERE id = ?)", *after)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings b` + w.String() +
		` ORDER BY b.created_at DESC, b.id DESC LIMIT ` + w.placeholder(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "list bookings")
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) Count(ctx context.Context, filter domain.BookingFilter) (int, error) {
	w := bookingWhere(filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings b`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, mapError(err, "count bookings")
	}
	return n, nil
}

func (r *BookingRepository) Schedule(ctx context.Context, yurtID uuid.UUID) ([]domain.ScheduleEntry, error) {
	query := `
	SELECT id, start_date, end_date, status
	FROM bookings
	WHERE yurt_id = $1 AND status <> 'CANCELLED'
	ORDER BY start_date
	`

	rows, err := r.db.QueryContext(ctx, query, yurtID)
	if err != nil {
		return nil, mapError(err, "load schedule")
	}

	defer rows.Close()

	var entries []domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		if err := rows.Scan(&e.BookingID, &e.Range.Start, &e.Range.End, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *BookingRepository) ListEndedConfirmed(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings b
	WHERE b.status = 'CONFIRMED' AND b.end_date <= $1
	ORDER BY b.end_date
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, before, limit)
	if err != nil {
		return nil, mapError(err, "list ended bookings")
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}
