package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

const orderColumns = `o.id, o.user_id, o.shipping_address, o.total_price, o.status, o.created_at, o.updated_at`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row scanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.ShippingAddress, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order header and items and takes every item out of
// stock. A single failing item rolls back the whole order, including stock
// already taken for earlier items.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		quantities := order.Quantities()
		for _, productID := range sortedProducts(quantities) {
			if err := decrementStock(ctx, tx, productID, quantities[productID]); err != nil {
				return err
			}
		}

		queryHeader := `
		INSERT INTO orders (id, user_id, shipping_address, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		_, err := tx.ExecContext(ctx, queryHeader, order.ID, order.UserID, order.ShippingAddress, order.TotalPrice, order.Status, order.CreatedAt, order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order header: %w", err)
		}

		queryItem := `
		INSERT INTO order_items (id, order_id, product_id, seller_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		`

		stmt, err := tx.PrepareContext(ctx, queryItem)
		if err != nil {
			return fmt.Errorf("failed to prepare item statement: %w", err)
		}

		defer stmt.Close()

		for _, item := range order.Items {
			_, err := stmt.ExecContext(ctx, item.ID, item.OrderID, item.ProductID, item.SellerID, item.Quantity, item.UnitPrice)
			if err != nil {
				return fmt.Errorf("failed to insert order item for product %s: %w", item.ProductID, err)
			}
		}

		return nil
	})
	return mapError(err, "create order")
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("order %s not found", orderID)
		}
		return nil, mapError(err, "get order")
	}

	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = []domain.OrderItem{}
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	query := `
	SELECT id, order_id, product_id, seller_id, quantity, unit_price
	FROM order_items
	WHERE order_id = ANY($1::uuid[])
	ORDER BY order_id, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return mapError(err, "load order items")
	}

	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SellerID, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

// UpdateStatus applies the change only if the stored status is still from.
// Cancelling returns the items to stock in the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		`

		res, err := tx.ExecContext(ctx, query, to, orderID, from)
		if err != nil {
			return err
		}
		if err := expectOne(res, domain.NewConflict("order %s was modified concurrently", orderID)); err != nil {
			return err
		}

		if to == domain.OrderCancelled && from.Restockable() {
			return restoreStock(ctx, tx, orderID)
		}
		return nil
	})
	return mapError(err, "update order status")
}

func (r *OrderRepository) UpdateShippingAddress(ctx context.Context, orderID uuid.UUID, address string) error {
	query := `
	UPDATE orders
	SET shipping_address = $1, updated_at = NOW()
	WHERE id = $2 AND status = 'PENDING'
	`

	res, err := r.db.ExecContext(ctx, query, address, orderID)
	if err != nil {
		return mapError(err, "update shipping address")
	}
	return expectOne(res, domain.NewConflict("order %s was modified concurrently", orderID))
}

// Delete removes the order and its items, restoring stock first when the
// order still holds it.
func (r *OrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var status domain.OrderStatus
		err := tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("order %s not found", orderID)
		}
		if err != nil {
			return err
		}

		if status.Restockable() {
			if err := restoreStock(ctx, tx, orderID); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
		return err
	})
	return mapError(err, "delete order")
}

func orderWhere(filter domain.OrderFilter) *where {
	w := &where{}
	if filter.UserID != uuid.Nil {
		w.add("o.user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		w.add("o.status = ?", filter.Status)
	}
	return w
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, after *uuid.UUID, limit int) ([]domain.Order, error) {
	w := orderWhere(filter)
	if after != nil {
		w.add("(o.created_at, o.id) < (SELECT created_at, id FROM orders WHERE id = ?)", *after)
	}

	query := `SELECT ` + orderColumns + ` FROM orders o` + w.String() +
		` ORDER BY o.created_at DESC, o.id DESC LIMIT ` + w.placeholder(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "list orders")
	}

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, *o)
	}
	return result, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter domain.OrderFilter) (int, error) {
	w := orderWhere(filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders o`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, mapError(err, "count orders")
	}
	return n, nil
}
