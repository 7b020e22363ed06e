// Package memory keeps the whole marketplace in process memory. Every write
// holds the store lock for its full check-and-write, so the guarantees match
// the transactional Postgres repositories.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type Store struct {
	mu             sync.RWMutex
	yurts          map[uuid.UUID]*domain.Yurt
	bookings       map[uuid.UUID]*domain.Booking
	travels        map[uuid.UUID]*domain.Travel
	travelBookings map[uuid.UUID]*domain.TravelBooking
	products       map[uuid.UUID]*domain.Product
	orders         map[uuid.UUID]*domain.Order
}

func NewStore() *Store {
	return &Store{
		yurts:          make(map[uuid.UUID]*domain.Yurt),
		bookings:       make(map[uuid.UUID]*domain.Booking),
		travels:        make(map[uuid.UUID]*domain.Travel),
		travelBookings: make(map[uuid.UUID]*domain.TravelBooking),
		products:       make(map[uuid.UUID]*domain.Product),
		orders:         make(map[uuid.UUID]*domain.Order),
	}
}

func (s *Store) AddYurt(y domain.Yurt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.yurts[y.ID] = &y
}

func (s *Store) AddTravel(t domain.Travel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.travels[t.ID] = &t
}

func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
}

// Stock returns the current stock of a product, or -1 if it is unknown.
func (s *Store) Stock(productID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return -1
	}
	return p.Stock
}

func (s *Store) Yurts() *YurtRepository {
	return &YurtRepository{s: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (s *Store) Travels() *TravelRepository {
	return &TravelRepository{s: s}
}

func (s *Store) TravelBookings() *TravelBookingRepository {
	return &TravelBookingRepository{s: s}
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{s: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

// newestFirst orders by created_at DESC, id DESC like the SQL listings.
func newestFirst(aAt time.Time, aID uuid.UUID, bAt time.Time, bID uuid.UUID) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID.String() > bID.String()
}

// keysetPage sorts rows newest first and returns up to limit of them that
// come strictly after the row with id after. An unknown cursor yields no
// rows, as the SQL subquery does.
func keysetPage[T any](rows []T, key func(T) (time.Time, uuid.UUID), after *uuid.UUID, limit int) []T {
	sort.Slice(rows, func(i, j int) bool {
		ai, aid := key(rows[i])
		bi, bid := key(rows[j])
		return newestFirst(ai, aid, bi, bid)
	})

	start := 0
	if after != nil {
		start = -1
		for i, r := range rows {
			if _, id := key(r); id == *after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return []T{}
		}
	}

	rows = rows[start:]
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
