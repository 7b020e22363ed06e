package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

const travelBookingColumns = `t.id, t.user_id, t.travel_id, t.start_date, t.number_of_people, t.total_price, t.status, t.created_at, t.updated_at`

const bookedSeatsQuery = `
	SELECT COALESCE(SUM(number_of_people), 0)
	FROM travel_bookings
	WHERE travel_id = $1
	  AND start_date = $2
	  AND status <> 'CANCELLED'
	  AND ($3::uuid IS NULL OR id <> $3)
	`

type TravelRepository struct {
	db *sql.DB
}

func NewTravelRepository(db *sql.DB) *TravelRepository {
	return &TravelRepository{db: db}
}

func (r *TravelRepository) GetByID(ctx context.Context, travelID uuid.UUID) (*domain.Travel, error) {
	query := `SELECT id, owner_id, name, base_price, max_people FROM travels WHERE id = $1`

	var t domain.Travel
	err := r.db.QueryRowContext(ctx, query, travelID).Scan(&t.ID, &t.OwnerID, &t.Name, &t.BasePrice, &t.MaxPeople)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("travel %s not found", travelID)
		}
		return nil, mapError(err, "get travel")
	}
	return &t, nil
}

type TravelBookingRepository struct {
	db *sql.DB
}

func NewTravelBookingRepository(db *sql.DB) *TravelBookingRepository {
	return &TravelBookingRepository{db: db}
}

func scanTravelBooking(row scanner) (*domain.TravelBooking, error) {
	var b domain.TravelBooking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.TravelID,
		&b.StartDate,
		&b.NumberOfPeople,
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

func (r *TravelBookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.TravelBooking, error) {
	query := `SELECT ` + travelBookingColumns + ` FROM travel_bookings t WHERE t.id = $1`

	booking, err := scanTravelBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("travel booking %s not found", bookingID)
		}
		return nil, mapError(err, "get travel booking")
	}
	return booking, nil
}

func (r *TravelBookingRepository) BookedSeats(ctx context.Context, travelID uuid.UUID, startDate time.Time, exclude *uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, bookedSeatsQuery, travelID, startDate, exclude).Scan(&n); err != nil {
		return 0, mapError(err, "count booked seats")
	}
	return n, nil
}

// reserveSeats locks the travel row and checks the departure still has room
// for b once the other active bookings are counted.
func reserveSeats(ctx context.Context, tx *sql.Tx, b *domain.TravelBooking, exclude *uuid.UUID) error {
	var maxPeople int
	err := tx.QueryRowContext(ctx, `SELECT max_people FROM travels WHERE id = $1 FOR UPDATE`, b.TravelID).Scan(&maxPeople)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("travel %s not found", b.TravelID)
	}
	if err != nil {
		return err
	}

	var booked int
	if err := tx.QueryRowContext(ctx, bookedSeatsQuery, b.TravelID, b.StartDate, exclude).Scan(&booked); err != nil {
		return err
	}

	if booked+b.NumberOfPeople > maxPeople {
		return domain.NewConflict("not enough seats: requested %d, available %d", b.NumberOfPeople, maxPeople-booked)
	}
	return nil
}

func (r *TravelBookingRepository) Create(ctx context.Context, booking *domain.TravelBooking) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := reserveSeats(ctx, tx, booking, nil); err != nil {
			return err
		}

		query := `
		INSERT INTO travel_bookings (id, user_id, travel_id, start_date, number_of_people, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.ExecContext(ctx, query,
			booking.ID,
			booking.UserID,
			booking.TravelID,
			booking.StartDate,
			booking.NumberOfPeople,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		return err
	})
	return mapError(err, "create travel booking")
}

func (r *TravelBookingRepository) UpdateParty(ctx context.Context, booking *domain.TravelBooking) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := reserveSeats(ctx, tx, booking, &booking.ID); err != nil {
			return err
		}

		query := `
		UPDATE travel_bookings
		SET start_date = $1, number_of_people = $2, total_price = $3, updated_at = $4
		WHERE id = $5 AND status IN ('PENDING', 'CONFIRMED')
		`

		res, err := tx.ExecContext(ctx, query, booking.StartDate, booking.NumberOfPeople, booking.TotalPrice, booking.UpdatedAt, booking.ID)
		if err != nil {
			return err
		}
		return expectOne(res, domain.NewConflict("travel booking %s was modified concurrently", booking.ID))
	})
	return mapError(err, "update travel booking")
}

func (r *TravelBookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	query := `
	UPDATE travel_bookings
	SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = $3
	`

	res, err := r.db.ExecContext(ctx, query, to, bookingID, from)
	if err != nil {
		return mapError(err, "update travel booking status")
	}
	return expectOne(res, domain.NewConflict("travel booking %s was modified concurrently", bookingID))
}

func (r *TravelBookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM travel_bookings WHERE id = $1`, bookingID)
	if err != nil {
		return mapError(err, "delete travel booking")
	}
	return expectOne(res, domain.NewNotFound("travel booking %s not found", bookingID))
}

func travelBookingWhere(filter domain.TravelBookingFilter) *where {
	w := &where{}
	if filter.UserID != uuid.Nil {
		w.add("t.user_id = ?", filter.UserID)
	}
	if filter.TravelID != uuid.Nil {
		w.add("t.travel_id = ?", filter.TravelID)
	}
	if filter.Status != "" {
		w.add("t.status = ?", filter.Status)
	}
	return w
}

func (r *TravelBookingRepository) List(ctx context.Context, filter domain.TravelBookingFilter, after *uuid.UUID, limit int) ([]domain.TravelBooking, error) {
	w := travelBookingWhere(filter)
	if after != nil {
		w.add("(t.created_at, t.id) < (SELECT created_at, id FROM travel_bookings WHERE id = ?)", *after)
	}

	query := `SELECT ` + travelBookingColumns + ` FROM travel_bookings t` + w.String() +
		` ORDER BY t.created_at DESC, t.id DESC LIMIT ` + w.placeholder(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "list travel bookings")
	}

	defer rows.Close()

	var bookings []domain.TravelBooking
	for rows.Next() {
		b, err := scanTravelBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func (r *TravelBookingRepository) Count(ctx context.Context, filter domain.TravelBookingFilter) (int, error) {
	w := travelBookingWhere(filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM travel_bookings t`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, mapError(err, "count travel bookings")
	}
	return n, nil
}
