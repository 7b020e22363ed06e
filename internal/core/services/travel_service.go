package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports"
	"github.com/srgjo27/gercamp/internal/platform/metrics"
)

const kindTravelBooking = "travel_booking"

type CreateTravelBookingRequest struct {
	TravelID       string    `json:"travelId" validate:"required,uuid"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	NumberOfPeople int       `json:"numberOfPeople" validate:"required,gte=1"`
}

type UpdateTravelBookingRequest struct {
	ID             string     `json:"-" validate:"required,uuid"`
	StartDate      *time.Time `json:"startDate"`
	NumberOfPeople *int       `json:"numberOfPeople" validate:"omitempty,gte=1"`
	Status         *string    `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type ListTravelBookingsRequest struct {
	UserID   string `form:"userId" json:"userId" validate:"omitempty,uuid"`
	TravelID string `form:"travelId" json:"travelId" validate:"omitempty,uuid"`
	Status   string `form:"status" json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	First    int    `form:"first" json:"first" validate:"gte=0"`
	After    string `form:"after" json:"after"`
}

type TravelService struct {
	travelRepo  ports.TravelRepository
	bookingRepo ports.TravelBookingRepository
	opts        options
}

func NewTravelService(travelRepo ports.TravelRepository, bookingRepo ports.TravelBookingRepository, opts ...Option) *TravelService {
	return &TravelService{
		travelRepo:  travelRepo,
		bookingRepo: bookingRepo,
		opts:        newOptions(opts),
	}
}

// departureDay truncates to the UTC calendar day a trip leaves on.
func departureDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *TravelService) checkSeats(ctx context.Context, travel *domain.Travel, day time.Time, people int, exclude *uuid.UUID) error {
	booked, err := s.bookingRepo.BookedSeats(ctx, travel.ID, day, exclude)
	if err != nil {
		return fmt.Errorf("check seats: %w", err)
	}
	if booked+people > travel.MaxPeople {
		metrics.IncConflict(kindTravelBooking)
		return domain.NewConflict("not enough seats on %s for %s: requested %d, available %d",
			travel.Name, day.Format(time.DateOnly), people, travel.MaxPeople-booked)
	}
	return nil
}

func (s *TravelService) CreateTravelBooking(ctx context.Context, p domain.Principal, req CreateTravelBookingRequest) (*domain.TravelBooking, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	travel, err := s.travelRepo.GetByID(ctx, uuid.MustParse(req.TravelID))
	if err != nil {
		return nil, err
	}

	day := departureDay(req.StartDate)
	if err := s.checkSeats(ctx, travel, day, req.NumberOfPeople, nil); err != nil {
		return nil, err
	}

	now := s.opts.now().UTC()
	booking := &domain.TravelBooking{
		ID:             uuid.New(),
		UserID:         p.AccountID,
		TravelID:       travel.ID,
		StartDate:      day,
		NumberOfPeople: req.NumberOfPeople,
		TotalPrice:     domain.TravelPrice(req.NumberOfPeople, travel.BasePrice),
		Status:         domain.BookingPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.IncConflict(kindTravelBooking)
		}
		return nil, err
	}

	metrics.IncReservationCreated(kindTravelBooking)
	s.opts.auditor.Record(ctx, p, "create", kindTravelBooking, booking.ID, fmt.Sprintf("%d people", booking.NumberOfPeople))

	return booking, nil
}

func (s *TravelService) UpdateTravelBooking(ctx context.Context, p domain.Principal, req UpdateTravelBookingRequest) (*domain.TravelBooking, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if req.StartDate == nil && req.NumberOfPeople == nil && req.Status == nil {
		return nil, domain.NewValidation("nothing to update")
	}

	booking, err := s.bookingRepo.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return nil, err
	}

	travel, err := s.travelRepo.GetByID(ctx, booking.TravelID)
	if err != nil {
		return nil, err
	}

	var change *partyChange
	if req.StartDate != nil || req.NumberOfPeople != nil {
		c, err := s.checkPartyChange(ctx, p, booking, travel, req.StartDate, req.NumberOfPeople)
		if err != nil {
			return nil, err
		}
		change = &c
	}

	var to domain.BookingStatus
	if req.Status != nil {
		to = domain.BookingStatus(*req.Status)
		if err := checkTravelTransition(p, booking, travel, to); err != nil {
			return nil, err
		}
	}

	if change != nil {
		if err := s.changeParty(ctx, p, booking, travel, *change); err != nil {
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

type partyChange struct {
	day    time.Time
	people int
}

// checkPartyChange authorizes moving the departure date or resizing the
// party and confirms the departure still has room.
func (s *TravelService) checkPartyChange(ctx context.Context, p domain.Principal, b *domain.TravelBooking, travel *domain.Travel, start *time.Time, people *int) (partyChange, error) {
	if b.UserID != p.AccountID && !p.IsAdmin() {
		return partyChange{}, domain.NewForbidden("only the traveller or an administrator can change this booking")
	}
	if b.Status.Terminal() {
		return partyChange{}, &domain.Error{Kind: domain.KindInvalidTransition, Message: fmt.Sprintf("cannot change a %s travel booking", b.Status)}
	}

	c := partyChange{day: b.StartDate, people: b.NumberOfPeople}
	if start != nil {
		c.day = departureDay(*start)
	}
	if people != nil {
		c.people = *people
	}

	if err := s.checkSeats(ctx, travel, c.day, c.people, &b.ID); err != nil {
		return partyChange{}, err
	}
	return c, nil
}

// changeParty persists a checked change. The price is recalculated from the
// current base price.
func (s *TravelService) changeParty(ctx context.Context, p domain.Principal, b *domain.TravelBooking, travel *domain.Travel, c partyChange) error {
	b.StartDate = c.day
	b.NumberOfPeople = c.people
	b.TotalPrice = domain.TravelPrice(c.people, travel.BasePrice)
	b.UpdatedAt = s.opts.now().UTC()

	if err := s.bookingRepo.UpdateParty(ctx, b); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.IncConflict(kindTravelBooking)
		}
		return err
	}

	s.opts.auditor.Record(ctx, p, "update", kindTravelBooking, b.ID, fmt.Sprintf("%d people", c.people))
	return nil
}

func checkTravelTransition(p domain.Principal, b *domain.TravelBooking, travel *domain.Travel, to domain.BookingStatus) error {
	if !p.IsAdmin() && travel.OwnerID != p.AccountID {
		if b.UserID != p.AccountID || to != domain.BookingCancelled {
			return domain.NewForbidden("not allowed to change this travel booking")
		}
	}
	if !b.Status.CanTransitionTo(to) {
		return domain.NewInvalidTransition(b.Status, to)
	}
	return nil
}

func (s *TravelService) transition(ctx context.Context, p domain.Principal, b *domain.TravelBooking, to domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		return err
	}

	b.Status = to
	b.UpdatedAt = s.opts.now().UTC()

	metrics.IncTransition(kindTravelBooking, to.String())
	s.opts.auditor.Record(ctx, p, "status:"+to.String(), kindTravelBooking, b.ID, "")
	return nil
}

func (s *TravelService) CancelTravelBooking(ctx context.Context, p domain.Principal, bookingID string) (*domain.TravelBooking, error) {
	status := string(domain.BookingCancelled)
	return s.UpdateTravelBooking(ctx, p, UpdateTravelBookingRequest{ID: bookingID, Status: &status})
}

func (s *TravelService) DeleteTravelBooking(ctx context.Context, p domain.Principal, bookingID string) error {
	if !p.IsAdmin() {
		return domain.NewForbidden("only an administrator can delete travel bookings")
	}

	id, err := parseID("id", bookingID)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.opts.auditor.Record(ctx, p, "delete", kindTravelBooking, id, "")
	return nil
}

func (s *TravelService) GetTravelBooking(ctx context.Context, p domain.Principal, bookingID string) (*domain.TravelBooking, error) {
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

	travel, err := s.travelRepo.GetByID(ctx, booking.TravelID)
	if err != nil {
		return nil, err
	}
	if travel.OwnerID != p.AccountID {
		return nil, domain.NewForbidden("not allowed to view this travel booking")
	}
	return booking, nil
}

// ListTravelBookings pages through travel bookings. Non-admin callers always
// get their own bookings only.
func (s *TravelService) ListTravelBookings(ctx context.Context, p domain.Principal, req ListTravelBookingsRequest) (domain.Page[domain.TravelBooking], error) {
	if err := validateInput(req); err != nil {
		return domain.Page[domain.TravelBooking]{}, err
	}

	page := domain.PageRequest{First: req.First, After: req.After}
	after, err := page.AfterID()
	if err != nil {
		return domain.Page[domain.TravelBooking]{}, err
	}

	filter := domain.TravelBookingFilter{
		UserID:   p.ScopeUser(optionalID(req.UserID)),
		TravelID: optionalID(req.TravelID),
		Status:   domain.BookingStatus(req.Status),
	}
	limit := page.Limit(s.opts.limits.Default, s.opts.limits.Max)

	rows, err := s.bookingRepo.List(ctx, filter, after, limit+1)
	if err != nil {
		return domain.Page[domain.TravelBooking]{}, fmt.Errorf("list travel bookings: %w", err)
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return domain.Page[domain.TravelBooking]{}, fmt.Errorf("count travel bookings: %w", err)
	}

	return domain.NewPage(rows, limit, total, func(b domain.TravelBooking) uuid.UUID { return b.ID }), nil
}
