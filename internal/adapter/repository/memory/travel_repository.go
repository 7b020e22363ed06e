package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type TravelRepository struct {
	s *Store
}

func (r *TravelRepository) GetByID(_ context.Context, travelID uuid.UUID) (*domain.Travel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.travels[travelID]
	if !ok {
		return nil, domain.NewNotFound("travel %s not found", travelID)
	}
	cp := *t
	return &cp, nil
}

type TravelBookingRepository struct {
	s *Store
}

func (s *Store) bookedSeatsLocked(travelID uuid.UUID, day time.Time, exclude *uuid.UUID) int {
	n := 0
	for _, b := range s.travelBookings {
		if b.TravelID != travelID || b.Status == domain.BookingCancelled || !b.StartDate.Equal(day) {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		n += b.NumberOfPeople
	}
	return n
}

func (s *Store) reserveSeatsLocked(b *domain.TravelBooking, exclude *uuid.UUID) error {
	travel, ok := s.travels[b.TravelID]
	if !ok {
		return domain.NewNotFound("travel %s not found", b.TravelID)
	}
	booked := s.bookedSeatsLocked(b.TravelID, b.StartDate, exclude)
	if booked+b.NumberOfPeople > travel.MaxPeople {
		return domain.NewConflict("not enough seats: requested %d, available %d", b.NumberOfPeople, travel.MaxPeople-booked)
	}
	return nil
}

func (r *TravelBookingRepository) GetByID(_ context.Context, bookingID uuid.UUID) (*domain.TravelBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.travelBookings[bookingID]
	if !ok {
		return nil, domain.NewNotFound("travel booking %s not found", bookingID)
	}
	cp := *b
	return &cp, nil
}

func (r *TravelBookingRepository) BookedSeats(_ context.Context, travelID uuid.UUID, startDate time.Time, exclude *uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.bookedSeatsLocked(travelID, startDate, exclude), nil
}

func (r *TravelBookingRepository) Create(_ context.Context, booking *domain.TravelBooking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.reserveSeatsLocked(booking, nil); err != nil {
		return err
	}
	cp := *booking
	r.s.travelBookings[cp.ID] = &cp
	return nil
}

func (r *TravelBookingRepository) UpdateParty(_ context.Context, booking *domain.TravelBooking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.travelBookings[booking.ID]
	if !ok || stored.Status.Terminal() {
		return domain.NewConflict("travel booking %s was modified concurrently", booking.ID)
	}
	if err := r.s.reserveSeatsLocked(booking, &booking.ID); err != nil {
		return err
	}

	stored.StartDate = booking.StartDate
	stored.NumberOfPeople = booking.NumberOfPeople
	stored.TotalPrice = booking.TotalPrice
	stored.UpdatedAt = booking.UpdatedAt
	return nil
}

func (r *TravelBookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.travelBookings[bookingID]
	if !ok || b.Status != from {
		return domain.NewConflict("travel booking %s was modified concurrently", bookingID)
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TravelBookingRepository) Delete(_ context.Context, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.travelBookings[bookingID]; !ok {
		return domain.NewNotFound("travel booking %s not found", bookingID)
	}
	delete(r.s.travelBookings, bookingID)
	return nil
}

func matchTravelBooking(b *domain.TravelBooking, f domain.TravelBookingFilter) bool {
	if f.UserID != uuid.Nil && b.UserID != f.UserID {
		return false
	}
	if f.TravelID != uuid.Nil && b.TravelID != f.TravelID {
		return false
	}
	return f.Status == "" || b.Status == f.Status
}

func (r *TravelBookingRepository) List(_ context.Context, filter domain.TravelBookingFilter, after *uuid.UUID, limit int) ([]domain.TravelBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []domain.TravelBooking
	for _, b := range r.s.travelBookings {
		if matchTravelBooking(b, filter) {
			rows = append(rows, *b)
		}
	}
	return keysetPage(rows, func(b domain.TravelBooking) (time.Time, uuid.UUID) { return b.CreatedAt, b.ID }, after, limit), nil
}

func (r *TravelBookingRepository) Count(_ context.Context, filter domain.TravelBookingFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, b := range r.s.travelBookings {
		if matchTravelBooking(b, filter) {
			n++
		}
	}
	return n, nil
}
