package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type YurtRepository struct {
	s *Store
}

func (r *YurtRepository) GetByID(_ context.Context, yurtID uuid.UUID) (*domain.Yurt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	y, ok := r.s.yurts[yurtID]
	if !ok {
		return nil, domain.NewNotFound("yurt %s not found", yurtID)
	}
	cp := *y
	return &cp, nil
}

func (r *YurtRepository) ListAvailable(_ context.Context, stay domain.DateRange) ([]domain.Yurt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var free []domain.Yurt
	for _, y := range r.s.yurts {
		if !r.s.overlapLocked(y.ID, stay, nil) {
			free = append(free, *y)
		}
	}

	sort.Slice(free, func(i, j int) bool {
		if free[i].Name != free[j].Name {
			return free[i].Name < free[j].Name
		}
		return free[i].ID.String() < free[j].ID.String()
	})
	return free, nil
}

type BookingRepository struct {
	s *Store
}

func (s *Store) overlapLocked(yurtID uuid.UUID, stay domain.DateRange, exclude *uuid.UUID) bool {
	for _, b := range s.bookings {
		if b.YurtID != yurtID || b.Status == domain.BookingCancelled {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.Range().Overlaps(stay) {
			return true
		}
	}
	return false
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, domain.NewNotFound("booking %s not found", bookingID)
	}
	cp := *b
	return &cp, nil
}

func (r *BookingRepository) HasOverlap(_ context.Context, yurtID uuid.UUID, stay domain.DateRange, exclude *uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.overlapLocked(yurtID, stay, exclude), nil
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.yurts[booking.YurtID]; !ok {
		return domain.NewNotFound("yurt %s not found", booking.YurtID)
	}
	if r.s.overlapLocked(booking.YurtID, booking.Range(), nil) {
		return domain.NewConflict("yurt is already booked for the requested dates")
	}

	cp := *booking
	r.s.bookings[cp.ID] = &cp
	return nil
}

func (r *BookingRepository) UpdateSchedule(_ context.Context, booking *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bookings[booking.ID]
	if !ok || stored.Status.Terminal() {
		return domain.NewConflict("booking %s was modified concurrently", booking.ID)
	}
	if r.s.overlapLocked(stored.YurtID, booking.Range(), &booking.ID) {
		return domain.NewConflict("yurt is already booked for the requested dates")
	}

	stored.StartDate = booking.StartDate
	stored.EndDate = booking.EndDate
	stored.TotalPrice = booking.TotalPrice
	stored.UpdatedAt = booking.UpdatedAt
	return nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[bookingID]
	if !ok || b.Status != from {
		return domain.NewConflict("booking %s was modified concurrently", bookingID)
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[bookingID]; !ok {
		return domain.NewNotFound("booking %s not found", bookingID)
	}
	delete(r.s.bookings, bookingID)
	return nil
}

func matchBooking(b *domain.Booking, f domain.BookingFilter) bool {
	if f.UserID != uuid.Nil && b.UserID != f.UserID {
		return false
	}
	if f.YurtID != uuid.Nil && b.YurtID != f.YurtID {
		return false
	}
	return f.Status == "" || b.Status == f.Status
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingFilter, after *uuid.UUID, limit int) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []domain.Booking
	for _, b := range r.s.bookings {
		if matchBooking(b, filter) {
			rows = append(rows, *b)
		}
	}
	return keysetPage(rows, func(b domain.Booking) (time.Time, uuid.UUID) { return b.CreatedAt, b.ID }, after, limit), nil
}

func (r *BookingRepository) Count(_ context.Context, filter domain.BookingFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, b := range r.s.bookings {
		if matchBooking(b, filter) {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepository) Schedule(_ context.Context, yurtID uuid.UUID) ([]domain.ScheduleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []domain.ScheduleEntry
	for _, b := range r.s.bookings {
		if b.YurtID == yurtID && b.Status != domain.BookingCancelled {
			entries = append(entries, domain.ScheduleEntry{BookingID: b.ID, Range: b.Range(), Status: b.Status})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Range.Start.Before(entries[j].Range.Start) })
	return entries, nil
}

func (r *BookingRepository) ListEndedConfirmed(_ context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ended []domain.Booking
	for _, b := range r.s.bookings {
		if b.Status == domain.BookingConfirmed && !b.EndDate.After(before) {
			ended = append(ended, *b)
		}
	}
	sort.Slice(ended, func(i, j int) bool { return ended[i].EndDate.Before(ended[j].EndDate) })
	if len(ended) > limit {
		ended = ended[:limit]
	}
	return ended, nil
}
