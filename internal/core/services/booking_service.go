package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports"
	"github.com/srgjo27/gercamp/internal/platform/metrics"
)

const kindBooking = "booking"

type CreateBookingRequest struct {
	YurtID    string    `json:"yurtId" validate:"required,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// UpdateBookingRequest changes the stay dates, the status, or both. Nil
// fields are left alone.
type UpdateBookingRequest struct {
	ID        string     `json:"-" validate:"required,uuid"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    *string    `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type ListBookingsRequest struct {
	UserID string `form:"userId" json:"userId" validate:"omitempty,uuid"`
	YurtID string `form:"yurtId" json:"yurtId" validate:"omitempty,uuid"`
	Status string `form:"status" json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	First  int    `form:"first" json:"first" validate:"gte=0"`
	After  string `form:"after" json:"after"`
}

type AvailableYurtsRequest struct {
	StartDate time.Time `form:"startDate" json:"startDate" time_format:"2006-01-02" validate:"required"`
	EndDate   time.Time `form:"endDate" json:"endDate" time_format:"2006-01-02" validate:"required"`
}

type BookingService struct {
	yurtRepo    ports.YurtRepository
	bookingRepo ports.BookingRepository
	opts        options
}

func NewBookingService(yurtRepo ports.YurtRepository, bookingRepo ports.BookingRepository, opts ...Option) *BookingService {
	return &BookingService{
		yurtRepo:    yurtRepo,
		bookingRepo: bookingRepo,
		opts:        newOptions(opts),
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, p domain.Principal, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	stay, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	yurt, err := s.yurtRepo.GetByID(ctx, uuid.MustParse(req.YurtID))
	if err != nil {
		return nil, err
	}

	// Fast rejection; the repository repeats the check under the yurt lock.
	taken, err := s.bookingRepo.HasOverlap(ctx, yurt.ID, stay, nil)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if taken {
		metrics.IncConflict(kindBooking)
		return nil, domain.NewConflict("yurt %s is already booked for the requested dates", yurt.Name)
	}

	now := s.opts.now().UTC()
	booking := &domain.Booking{
		ID:         uuid.New(),
		UserID:     p.AccountID,
		YurtID:     yurt.ID,
		StartDate:  stay.Start,
		EndDate:    stay.End,
		TotalPrice: domain.StayPrice(stay, yurt.PricePerNight),
		Status:     domain.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.IncConflict(kindBooking)
		}
		return nil, err
	}

	s.invalidateSchedule(ctx, yurt.ID)
	metrics.IncReservationCreated(kindBooking)
	s.opts.auditor.Record(ctx, p, "create", kindBooking, booking.ID, stay.Start.Format(time.DateOnly)+"/"+stay.End.Format(time.DateOnly))

	return booking, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, p domain.Principal, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if req.StartDate == nil && req.EndDate == nil && req.Status == nil {
		return nil, domain.NewValidation("nothing to update")
	}

	booking, err := s.bookingRepo.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return nil, err
	}

	yurt, err := s.yurtRepo.GetByID(ctx, booking.YurtID)
	if err != nil {
		return nil, err
	}

	var stay *domain.DateRange
	if req.StartDate != nil || req.EndDate != nil {
		r, err := s.checkReschedule(ctx, p, booking, yurt, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		stay = &r
	}

	var to domain.BookingStatus
	if req.Status != nil {
		to = domain.BookingStatus(*req.Status)
		if err := checkBookingTransition(p, booking, yurt, to); err != nil {
			return nil, err
		}
	}

	// Nothing is written until every requested change has passed its checks.
	if stay != nil {
		if err := s.reschedule(ctx, p, booking, yurt, *stay); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := s.transition(ctx, p, booking, to); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// checkReschedule authorizes a date change and returns the new stay once it
// is known to be free.
func (s *BookingService) checkReschedule(ctx context.Context, p domain.Principal, b *domain.Booking, yurt *domain.Yurt, start, end *time.Time) (domain.DateRange, error) {
	if b.UserID != p.AccountID && !p.IsAdmin() {
		return domain.DateRange{}, domain.NewForbidden("only the guest or an administrator can change booking dates")
	}
	if b.Status.Terminal() {
		return domain.DateRange{}, &domain.Error{Kind: domain.KindInvalidTransition, Message: fmt.Sprintf("cannot change dates of a %s booking", b.Status)}
	}

	newStart, newEnd := b.StartDate, b.EndDate
	if start != nil {
		newStart = *start
	}
	if end != nil {
		newEnd = *end
	}

	stay, err := domain.NewDateRange(newStart, newEnd)
	if err != nil {
		return domain.DateRange{}, err
	}

	taken, err := s.bookingRepo.HasOverlap(ctx, b.YurtID, stay, &b.ID)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("check availability: %w", err)
	}
	if taken {
		metrics.IncConflict(kindBooking)
		return domain.DateRange{}, domain.NewConflict("yurt %s is already booked for the requested dates", yurt.Name)
	}
	return stay, nil
}

// reschedule persists a checked stay. The repository repeats the overlap
// check under the yurt lock.
func (s *BookingService) reschedule(ctx context.Context, p domain.Principal, b *domain.Booking, yurt *domain.Yurt, stay domain.DateRange) error {
	b.StartDate = stay.Start
	b.EndDate = stay.End
	b.TotalPrice = domain.StayPrice(stay, yurt.PricePerNight)
	b.UpdatedAt = s.opts.now().UTC()

	if err := s.bookingRepo.UpdateSchedule(ctx, b); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.IncConflict(kindBooking)
		}
		return err
	}

	s.invalidateSchedule(ctx, b.YurtID)
	s.opts.auditor.Record(ctx, p, "reschedule", kindBooking, b.ID, stay.Start.Format(time.DateOnly)+"/"+stay.End.Format(time.DateOnly))
	return nil
}

// checkBookingTransition authorizes a status change. The guest may only
// cancel; the yurt owner and administrators may make any allowed change.
func checkBookingTransition(p domain.Principal, b *domain.Booking, yurt *domain.Yurt, to domain.BookingStatus) error {
	if !p.IsAdmin() && yurt.OwnerID != p.AccountID {
		if b.UserID != p.AccountID || to != domain.BookingCancelled {
			return domain.NewForbidden("not allowed to change this booking")
		}
	}
	if !b.Status.CanTransitionTo(to) {
		return domain.NewInvalidTransition(b.Status, to)
	}
	return nil
}

func (s *BookingService) transition(ctx context.Context, p domain.Principal, b *domain.Booking, to domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		return err
	}

	b.Status = to
	b.UpdatedAt = s.opts.now().UTC()

	s.invalidateSchedule(ctx, b.YurtID)
	metrics.IncTransition(kindBooking, to.String())
	s.opts.auditor.Record(ctx, p, "status:"+to.String(), kindBooking, b.ID, "")
	return nil
}

func (s *BookingService) CancelBooking(ctx context.Context, p domain.Principal, bookingID string) (*domain.Booking, error) {
	status := string(domain.BookingCancelled)
	return s.UpdateBooking(ctx, p, UpdateBookingRequest{ID: bookingID, Status: &status})
}

// DeleteBooking physically removes a booking. Administrators only.
func (s *BookingService) DeleteBooking(ctx context.Context, p domain.Principal, bookingID string) error {
	if !p.IsAdmin() {
		return domain.NewForbidden("only an administrator can delete bookings")
	}

	id, err := parseID("id", bookingID)
	if err != nil {
		return err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSchedule(ctx, booking.YurtID)
	s.opts.auditor.Record(ctx, p, "delete", kindBooking, id, "")
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, p domain.Principal, bookingID string) (*domain.Booking, error) {
	id, err := parseID("id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.IsAdmin() || booking.UserID == p.AccountID {
		return booking, nil
	}

	yurt, err := s.yurtRepo.GetByID(ctx, booking.YurtID)
	if err != nil {
		return nil, err
	}
	if yurt.OwnerID != p.AccountID {
		return nil, domain.NewForbidden("not allowed to view this booking")
	}
	return booking, nil
}

// ListBookings pages through bookings. Non-admin callers always get their
// own bookings only, whatever userId they ask for.
func (s *BookingService) ListBookings(ctx context.Context, p domain.Principal, req ListBookingsRequest) (domain.Page[domain.Booking], error) {
	if err := validateInput(req); err != nil {
		return domain.Page[domain.Booking]{}, err
	}

	page := domain.PageRequest{First: req.First, After: req.After}
	after, err := page.AfterID()
	if err != nil {
		return domain.Page[domain.Booking]{}, err
	}

	filter := domain.BookingFilter{
		UserID: p.ScopeUser(optionalID(req.UserID)),
		YurtID: optionalID(req.YurtID),
		Status: domain.BookingStatus(req.Status),
	}
	limit := page.Limit(s.opts.limits.Default, s.opts.limits.Max)

	rows, err := s.bookingRepo.List(ctx, filter, after, limit+1)
	if err != nil {
		return domain.Page[domain.Booking]{}, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return domain.Page[domain.Booking]{}, fmt.Errorf("count bookings: %w", err)
	}

	return domain.NewPage(rows, limit, total, func(b domain.Booking) uuid.UUID { return b.ID }), nil
}

func (s *BookingService) AvailableYurts(ctx context.Context, req AvailableYurtsRequest) ([]domain.Yurt, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	stay, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	yurts, err := s.yurtRepo.ListAvailable(ctx, stay)
	if err != nil {
		return nil, fmt.Errorf("list available yurts: %w", err)
	}
	if yurts == nil {
		yurts = []domain.Yurt{}
	}
	return yurts, nil
}

// YurtSchedule returns the yurt's occupied intervals, served from the cache
// when possible.
func (s *BookingService) YurtSchedule(ctx context.Context, yurtID string) ([]domain.ScheduleEntry, error) {
	id, err := parseID("yurtId", yurtID)
	if err != nil {
		return nil, err
	}

	if s.opts.cache != nil {
		entries, ok, err := s.opts.cache.Get(ctx, id)
		if err != nil {
			s.opts.logger.Warn("schedule cache read failed", zap.Stringer("yurt_id", id), zap.Error(err))
		} else if ok {
			return entries, nil
		}
	}

	if _, err := s.yurtRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.bookingRepo.Schedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}

	if s.opts.cache != nil {
		if err := s.opts.cache.Set(ctx, id, entries); err != nil {
			s.opts.logger.Warn("schedule cache write failed", zap.Stringer("yurt_id", id), zap.Error(err))
		}
	}

	return entries, nil
}

func (s *BookingService) invalidateSchedule(ctx context.Context, yurtID uuid.UUID) {
	if s.opts.cache == nil {
		return
	}
	if err := s.opts.cache.Invalidate(ctx, yurtID); err != nil {
		s.opts.logger.Warn("schedule cache invalidation failed", zap.Stringer("yurt_id", yurtID), zap.Error(err))
	}
}
