package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	query := `SELECT id, owner_id, name, price, stock FROM products WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("product %s not found", productID)
		}
		return nil, mapError(err, "get product")
	}
	return &p, nil
}

// sortedProducts orders product ids so concurrent transactions take row
// locks in the same order.
func sortedProducts(quantities map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// decrementStock takes qty units of the product, failing with Conflict when
// fewer are left. The WHERE guard makes the check and the write one step.
func decrementStock(ctx context.Context, tx *sql.Tx, productID uuid.UUID, qty int) error {
	query := `
	UPDATE products
	SET stock = stock - $1
	WHERE id = $2 AND stock >= $1
	`

	res, err := tx.ExecContext(ctx, query, qty, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var stock int
		err := tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("product %s not found", productID)
		}
		if err != nil {
			return err
		}
		return domain.NewConflict("insufficient stock for product %s: requested %d, available %d", productID, qty, stock)
	}

	return nil
}

// restoreStock returns every item of the order to stock.
func restoreStock(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) error {
	query := `
	UPDATE products p
	SET stock = p.stock + oi.quantity
	FROM (
		SELECT product_id, SUM(quantity) AS quantity
		FROM order_items
		WHERE order_id = $1
		GROUP BY product_id
	) oi
	WHERE p.id = oi.product_id
	`

	_, err := tx.ExecContext(ctx, query, orderID)
	return err
}
