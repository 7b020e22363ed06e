package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

const yurtColumns = `y.id, y.owner_id, y.name, y.location, y.capacity, y.price_per_night`

type YurtRepository struct {
	db *sql.DB
}

func NewYurtRepository(db *sql.DB) *YurtRepository {
	return &YurtRepository{db: db}
}

func scanYurt(row scanner) (*domain.Yurt, error) {
	var y domain.Yurt
	if err := row.Scan(&y.ID, &y.OwnerID, &y.Name, &y.Location, &y.Capacity, &y.PricePerNight); err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *YurtRepository) GetByID(ctx context.Context, yurtID uuid.UUID) (*domain.Yurt, error) {
	query := `SELECT ` + yurtColumns + ` FROM yurts y WHERE y.id = $1`

	yurt, err := scanYurt(r.db.QueryRowContext(ctx, query, yurtID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("yurt %s not found", yurtID)
		}
		return nil, mapError(err, "get yurt")
	}
	return yurt, nil
}

// ListAvailable returns yurts with no active booking intersecting r.
func (r *YurtRepository) ListAvailable(ctx context.Context, stay domain.DateRange) ([]domain.Yurt, error) {
	query := `
	SELECT ` + yurtColumns + `
	FROM yurts y
	WHERE NOT EXISTS (
		SELECT 1 FROM bookings b
		WHERE b.yurt_id = y.id
		  AND b.status <> 'CANCELLED'
		  AND b.start_date < $2
		  AND b.end_date > $1
	)
	ORDER BY y.name, y.id
	`

	rows, err := r.db.QueryContext(ctx, query, stay.Start, stay.End)
	if err != nil {
		return nil, mapError(err, "list available yurts")
	}

	defer rows.Close()

	var yurts []domain.Yurt
	for rows.Next() {
		y, err := scanYurt(rows)
		if err != nil {
			return nil, err
		}
		yurts = append(yurts, *y)
	}

	return yurts, rows.Err()
}
