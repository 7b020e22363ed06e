package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/gercamp/internal/core/domain"
)

// Lookups return a *domain.Error of kind NotFound when the record is absent.
// Writers that re-check availability return kind Conflict when the check fails
// inside their transaction.

type YurtRepository interface {
	GetByID(ctx context.Context, yurtID uuid.UUID) (*domain.Yurt, error)
	ListAvailable(ctx context.Context, r domain.DateRange) ([]domain.Yurt, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	HasOverlap(ctx context.Context, yurtID uuid.UUID, r domain.DateRange, exclude *uuid.UUID) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) error
	UpdateSchedule(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
	List(ctx context.Context, filter domain.BookingFilter, after *uuid.UUID, limit int) ([]domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingFilter) (int, error)
	Schedule(ctx context.Context, yurtID uuid.UUID) ([]domain.ScheduleEntry, error)
	ListEndedConfirmed(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error)
}

type TravelRepository interface {
	GetByID(ctx context.Context, travelID uuid.UUID) (*domain.Travel, error)
}

type TravelBookingRepository interface {
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.TravelBooking, error)
	BookedSeats(ctx context.Context, travelID uuid.UUID, startDate time.Time, exclude *uuid.UUID) (int, error)
	Create(ctx context.Context, booking *domain.TravelBooking) error
	UpdateParty(ctx context.Context, booking *domain.TravelBooking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
	List(ctx context.Context, filter domain.TravelBookingFilter, after *uuid.UUID, limit int) ([]domain.TravelBooking, error)
	Count(ctx context.Context, filter domain.TravelBookingFilter) (int, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	// Create inserts the order and its items and decrements stock for every
	// item, all or nothing.
	Create(ctx context.Context, order *domain.Order) error
	// UpdateStatus restores stock for every item when moving to CANCELLED.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) error
	UpdateShippingAddress(ctx context.Context, orderID uuid.UUID, address string) error
	Delete(ctx context.Context, orderID uuid.UUID) error
	List(ctx context.Context, filter domain.OrderFilter, after *uuid.UUID, limit int) ([]domain.Order, error)
	Count(ctx context.Context, filter domain.OrderFilter) (int, error)
}
