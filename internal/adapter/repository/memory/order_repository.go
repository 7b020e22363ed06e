package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) GetByID(_ context.Context, productID uuid.UUID) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[productID]
	if !ok {
		return nil, domain.NewNotFound("product %s not found", productID)
	}
	cp := *p
	return &cp, nil
}

type OrderRepository struct {
	s *Store
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem{}, o.Items...)
	return &cp
}

func (s *Store) restockLocked(o *domain.Order) {
	for _, item := range o.Items {
		if p, ok := s.products[item.ProductID]; ok {
			p.Stock += item.Quantity
		}
	}
}

// Create checks every line before touching stock, so a failing line leaves
// all products unchanged.
func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	quantities := order.Quantities()
	for productID, qty := range quantities {
		p, ok := r.s.products[productID]
		if !ok {
			return domain.NewNotFound("product %s not found", productID)
		}
		if p.Stock < qty {
			return domain.NewConflict("insufficient stock for product %s: requested %d, available %d", productID, qty, p.Stock)
		}
	}

	for productID, qty := range quantities {
		r.s.products[productID].Stock -= qty
	}

	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, orderID uuid.UUID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.NewNotFound("order %s not found", orderID)
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, orderID uuid.UUID, from, to domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok || o.Status != from {
		return domain.NewConflict("order %s was modified concurrently", orderID)
	}

	if to == domain.OrderCancelled && from.Restockable() {
		r.s.restockLocked(o)
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *OrderRepository) UpdateShippingAddress(_ context.Context, orderID uuid.UUID, address string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok || o.Status != domain.OrderPending {
		return domain.NewConflict("order %s was modified concurrently", orderID)
	}
	o.ShippingAddress = address
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.NewNotFound("order %s not found", orderID)
	}
	if o.Status.Restockable() {
		r.s.restockLocked(o)
	}
	delete(r.s.orders, orderID)
	return nil
}

func matchOrder(o *domain.Order, f domain.OrderFilter) bool {
	if f.UserID != uuid.Nil && o.UserID != f.UserID {
		return false
	}
	return f.Status == "" || o.Status == f.Status
}

func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter, after *uuid.UUID, limit int) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []domain.Order
	for _, o := range r.s.orders {
		if matchOrder(o, filter) {
			rows = append(rows, *copyOrder(o))
		}
	}
	return keysetPage(rows, func(o domain.Order) (time.Time, uuid.UUID) { return o.CreatedAt, o.ID }, after, limit), nil
}

func (r *OrderRepository) Count(_ context.Context, filter domain.OrderFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, o := range r.s.orders {
		if matchOrder(o, filter) {
			n++
		}
	}
	return n, nil
}
