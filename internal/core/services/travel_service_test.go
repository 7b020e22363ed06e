package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports/mocks"
	"github.com/srgjo27/gercamp/internal/core/services"
)

func newTravel(maxPeople int) *domain.Travel {
	return &domain.Travel{ID: uuid.New(), OwnerID: uuid.New(), Name: "Gobi loop", BasePrice: decimal.NewFromInt(50), MaxPeople: maxPeople}
}

func TestCreateTravelBooking_PricesPerPerson(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	travel := newTravel(10)
	departure := date(9, 1)

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("BookedSeats", ctx, travel.ID, departure, (*uuid.UUID)(nil)).Return(4, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.TravelBooking")).Return(nil)

	booking, err := svc.CreateTravelBooking(ctx, customer(), services.CreateTravelBookingRequest{
		TravelID:       travel.ID.String(),
		StartDate:      departure.Add(15 * time.Hour),
		NumberOfPeople: 3,
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(booking.TotalPrice))
	assert.True(t, departure.Equal(booking.StartDate))
}

func TestCreateTravelBooking_Full(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	travel := newTravel(10)
	departure := date(9, 1)

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("BookedSeats", ctx, travel.ID, departure, (*uuid.UUID)(nil)).Return(8, nil)

	_, err := svc.CreateTravelBooking(ctx, customer(), services.CreateTravelBookingRequest{
		TravelID:       travel.ID.String(),
		StartDate:      departure,
		NumberOfPeople: 3,
	})

	assert.True(t, domain.IsKind(err, domain.KindConflict))
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTravelBooking_ResizeRepricesAndExcludesSelf(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	traveller := customer()
	travel := newTravel(10)
	booking := &domain.TravelBooking{
		ID: uuid.New(), UserID: traveller.AccountID, TravelID: travel.ID,
		StartDate: date(9, 1), NumberOfPeople: 2, Status: domain.BookingConfirmed,
	}

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("BookedSeats", ctx, travel.ID, booking.StartDate, &booking.ID).Return(5, nil)
	bookingRepo.On("UpdateParty", ctx, booking).Return(nil)

	people := 5
	got, err := svc.UpdateTravelBooking(ctx, traveller, services.UpdateTravelBookingRequest{ID: booking.ID.String(), NumberOfPeople: &people})

	require.NoError(t, err)
	assert.Equal(t, 5, got.NumberOfPeople)
	assert.True(t, decimal.NewFromInt(250).Equal(got.TotalPrice))
}

func TestUpdateTravelBooking_OwnerCompletes(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	travel := newTravel(10)
	owner := domain.Principal{AccountID: travel.OwnerID, Role: domain.RoleHerder}
	booking := &domain.TravelBooking{ID: uuid.New(), UserID: uuid.New(), TravelID: travel.ID, Status: domain.BookingConfirmed}

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("UpdateStatus", ctx, booking.ID, domain.BookingConfirmed, domain.BookingCompleted).Return(nil)

	status := string(domain.BookingCompleted)
	got, err := svc.UpdateTravelBooking(ctx, owner, services.UpdateTravelBookingRequest{ID: booking.ID.String(), Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
}

func TestCancelTravelBooking_StrangerForbidden(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	travel := newTravel(10)
	booking := &domain.TravelBooking{ID: uuid.New(), UserID: uuid.New(), TravelID: travel.ID, Status: domain.BookingPending}

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	_, err := svc.CancelTravelBooking(ctx, customer(), booking.ID.String())

	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestListTravelBookings_ScopedToCaller(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	traveller := customer()
	scoped := mock.MatchedBy(func(f domain.TravelBookingFilter) bool {
		return f.UserID == traveller.AccountID
	})

	rows := []domain.TravelBooking{{ID: uuid.New(), UserID: traveller.AccountID}, {ID: uuid.New(), UserID: traveller.AccountID}}
	bookingRepo.On("List", ctx, scoped, (*uuid.UUID)(nil), 2).Return(rows, nil)
	bookingRepo.On("Count", ctx, scoped).Return(2, nil)

	page, err := svc.ListTravelBookings(ctx, traveller, services.ListTravelBookingsRequest{UserID: uuid.NewString(), First: 1})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, 2, page.TotalCount)
}

func TestGetTravelBooking_OwnerSeesStrangerDoesNot(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	travel := newTravel(10)
	owner := domain.Principal{AccountID: travel.OwnerID, Role: domain.RoleHerder}
	booking := &domain.TravelBooking{ID: uuid.New(), UserID: uuid.New(), TravelID: travel.ID, Status: domain.BookingPending}

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	got, err := svc.GetTravelBooking(ctx, owner, booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetTravelBooking(ctx, customer(), booking.ID.String())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestDeleteTravelBooking_AdminOnly(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	id := uuid.New()

	err := svc.DeleteTravelBooking(ctx, customer(), id.String())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	bookingRepo.On("Delete", ctx, id).Return(nil)
	err = svc.DeleteTravelBooking(ctx, domain.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}, id.String())
	assert.NoError(t, err)
}

func TestUpdateTravelBooking_RejectedStatusKeepsParty(t *testing.T) {
	travelRepo := mocks.NewTravelRepository(t)
	bookingRepo := mocks.NewTravelBookingRepository(t)
	svc := services.NewTravelService(travelRepo, bookingRepo)

	ctx := context.Background()
	traveller := customer()
	travel := newTravel(10)
	booking := &domain.TravelBooking{
		ID: uuid.New(), UserID: traveller.AccountID, TravelID: travel.ID,
		StartDate: date(9, 1), NumberOfPeople: 2, TotalPrice: decimal.NewFromInt(100), Status: domain.BookingPending,
	}

	travelRepo.On("GetByID", ctx, travel.ID).Return(travel, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("BookedSeats", ctx, travel.ID, booking.StartDate, &booking.ID).Return(0, nil)

	people := 4
	status := string(domain.BookingCompleted)
	_, err := svc.UpdateTravelBooking(ctx, traveller, services.UpdateTravelBookingRequest{
		ID: booking.ID.String(), NumberOfPeople: &people, Status: &status,
	})

	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	bookingRepo.AssertNotCalled(t, "UpdateParty", mock.Anything, mock.Anything)
	assert.Equal(t, 2, booking.NumberOfPeople)
	assert.True(t, decimal.NewFromInt(100).Equal(booking.TotalPrice))
}
