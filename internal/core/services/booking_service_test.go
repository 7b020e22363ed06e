package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/gercamp/internal/adapter/rediscache"
	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports/mocks"
	"github.com/srgjo27/gercamp/internal/core/services"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func newYurt(owner uuid.UUID) *domain.Yurt {
	return &domain.Yurt{ID: uuid.New(), OwnerID: owner, Name: "Terelj", PricePerNight: decimal.NewFromInt(120)}
}

func customer() domain.Principal {
	return domain.Principal{AccountID: uuid.New(), Role: domain.RoleCustomer}
}

func TestCreateBooking_Success(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	cache := mocks.NewScheduleCache(t)

	svc := services.NewBookingService(yurtRepo, bookingRepo, services.WithScheduleCache(cache))

	ctx := context.Background()
	guest := customer()
	yurt := newYurt(uuid.New())

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.AnythingOfType("domain.DateRange"), (*uuid.UUID)(nil)).Return(false, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	cache.On("Invalidate", ctx, yurt.ID).Return(nil)

	booking, err := svc.CreateBooking(ctx, guest, services.CreateBookingRequest{
		YurtID:    yurt.ID.String(),
		StartDate: date(7, 1),
		EndDate:   date(7, 4),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, guest.AccountID, booking.UserID)
	assert.True(t, decimal.NewFromInt(360).Equal(booking.TotalPrice))
}

func TestCreateBooking_Overlap(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)

	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	yurt := newYurt(uuid.New())

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, (*uuid.UUID)(nil)).Return(true, nil)

	booking, err := svc.CreateBooking(ctx, customer(), services.CreateBookingRequest{
		YurtID:    yurt.ID.String(),
		StartDate: date(7, 3),
		EndDate:   date(7, 5),
	})

	assert.Nil(t, booking)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_LostRaceInsideTransaction(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)

	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	yurt := newYurt(uuid.New())

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, (*uuid.UUID)(nil)).Return(false, nil)
	bookingRepo.On("Create", ctx, mock.Anything).Return(domain.NewConflict("yurt is already booked for the requested dates"))

	_, err := svc.CreateBooking(ctx, customer(), services.CreateBookingRequest{
		YurtID:    yurt.ID.String(),
		StartDate: date(7, 1),
		EndDate:   date(7, 2),
	})

	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	tests := []struct {
		name  string
		req   services.CreateBookingRequest
		field string
	}{
		{
			name:  "bad yurt id",
			req:   services.CreateBookingRequest{YurtID: "nope", StartDate: date(7, 1), EndDate: date(7, 2)},
			field: "yurtId",
		},
		{
			name:  "start after end",
			req:   services.CreateBookingRequest{YurtID: uuid.NewString(), StartDate: date(7, 4), EndDate: date(7, 1)},
			field: "endDate",
		},
		{
			name:  "empty range",
			req:   services.CreateBookingRequest{YurtID: uuid.NewString(), StartDate: date(7, 1), EndDate: date(7, 1)},
			field: "endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), customer(), tt.req)

			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, domain.KindValidation, de.Kind)

			fields := make([]string, 0, len(de.Fields))
			for _, f := range de.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUpdateBooking_GuestMayOnlyCancel(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	guest := customer()
	yurt := newYurt(uuid.New())
	booking := &domain.Booking{ID: uuid.New(), UserID: guest.AccountID, YurtID: yurt.ID, Status: domain.BookingPending}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	confirmed := string(domain.BookingConfirmed)
	_, err := svc.UpdateBooking(ctx, guest, services.UpdateBookingRequest{ID: booking.ID.String(), Status: &confirmed})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	bookingRepo.On("UpdateStatus", ctx, booking.ID, domain.BookingPending, domain.BookingCancelled).Return(nil)

	cancelled, err := svc.CancelBooking(ctx, guest, booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
}

func TestUpdateBooking_OwnerConfirms(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	owner := domain.Principal{AccountID: uuid.New(), Role: domain.RoleHerder}
	yurt := newYurt(owner.AccountID)
	booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), YurtID: yurt.ID, Status: domain.BookingPending}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("UpdateStatus", ctx, booking.ID, domain.BookingPending, domain.BookingConfirmed).Return(nil)

	status := string(domain.BookingConfirmed)
	got, err := svc.UpdateBooking(ctx, owner, services.UpdateBookingRequest{ID: booking.ID.String(), Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}

func TestUpdateBooking_TerminalRejectsTransition(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}
	yurt := newYurt(uuid.New())
	booking := &domain.Booking{ID: uuid.New(), YurtID: yurt.ID, Status: domain.BookingCompleted}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	_, err := svc.CancelBooking(ctx, admin, booking.ID.String())

	assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBooking_RescheduleExcludesItself(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	guest := customer()
	yurt := newYurt(uuid.New())
	booking := &domain.Booking{
		ID: uuid.New(), UserID: guest.AccountID, YurtID: yurt.ID,
		StartDate: date(7, 1), EndDate: date(7, 3), Status: domain.BookingPending,
	}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, &booking.ID).Return(false, nil)
	bookingRepo.On("UpdateSchedule", ctx, booking).Return(nil)

	end := date(7, 5)
	got, err := svc.UpdateBooking(ctx, guest, services.UpdateBookingRequest{ID: booking.ID.String(), EndDate: &end})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(480).Equal(got.TotalPrice))
	assert.True(t, end.Equal(got.EndDate))
}

func TestDeleteBooking_AdminOnly(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	err := svc.DeleteBooking(context.Background(), customer(), uuid.NewString())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestListBookings_ScopedToCaller(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo, services.WithPageLimits(services.PageLimits{Default: 2, Max: 10}))

	ctx := context.Background()
	guest := customer()
	filter := domain.BookingFilter{UserID: guest.AccountID}

	rows := []domain.Booking{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	bookingRepo.On("List", ctx, filter, (*uuid.UUID)(nil), 3).Return(rows, nil)
	bookingRepo.On("Count", ctx, filter).Return(7, nil)

	page, err := svc.ListBookings(ctx, guest, services.ListBookingsRequest{UserID: uuid.NewString()})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, domain.EncodeCursor(rows[1].ID), page.PageInfo.EndCursor)
	assert.Equal(t, 7, page.TotalCount)
}

func TestListBookings_AdminSeesRequestedUser(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}
	target := uuid.New()
	filter := domain.BookingFilter{UserID: target}

	bookingRepo.On("List", ctx, filter, (*uuid.UUID)(nil), domain.DefaultPageSize+1).Return(nil, nil)
	bookingRepo.On("Count", ctx, filter).Return(0, nil)

	page, err := svc.ListBookings(ctx, admin, services.ListBookingsRequest{UserID: target.String()})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.PageInfo.HasNextPage)
}

func TestYurtSchedule_UsesRedisCache(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	client, redisMock := redismock.NewClientMock()
	cache := rediscache.NewScheduleCache(client, time.Minute)

	svc := services.NewBookingService(yurtRepo, bookingRepo, services.WithScheduleCache(cache))

	ctx := context.Background()
	yurt := newYurt(uuid.New())
	key := rediscache.ScheduleKey(yurt.ID)

	redisMock.ExpectGet(key).RedisNil()
	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("Schedule", ctx, yurt.ID).Return(nil, nil)
	redisMock.ExpectSet(key, "[]", time.Minute).SetVal("OK")

	entries, err := svc.YurtSchedule(ctx, yurt.ID.String())

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestYurtSchedule_CacheFailureFallsBack(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	cache := mocks.NewScheduleCache(t)

	svc := services.NewBookingService(yurtRepo, bookingRepo, services.WithScheduleCache(cache))

	ctx := context.Background()
	yurt := newYurt(uuid.New())
	entries := []domain.ScheduleEntry{{BookingID: uuid.New(), Status: domain.BookingPending}}

	cache.On("Get", ctx, yurt.ID).Return(nil, false, errors.New("redis down"))
	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("Schedule", ctx, yurt.ID).Return(entries, nil)
	cache.On("Set", ctx, yurt.ID, entries).Return(errors.New("redis down"))

	got, err := svc.YurtSchedule(ctx, yurt.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestAuditorFailureDoesNotFailWrite(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	sink := mocks.NewAuditSink(t)

	svc := services.NewBookingService(yurtRepo, bookingRepo, services.WithAuditor(services.NewAuditor(sink, nil)))

	ctx := context.Background()
	yurt := newYurt(uuid.New())

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, (*uuid.UUID)(nil)).Return(false, nil)
	bookingRepo.On("Create", ctx, mock.Anything).Return(nil)
	sink.On("Append", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == "create" && e.Entity == "booking"
	})).Return(errors.New("stream unavailable"))

	booking, err := svc.CreateBooking(ctx, customer(), services.CreateBookingRequest{
		YurtID:    yurt.ID.String(),
		StartDate: date(7, 1),
		EndDate:   date(7, 2),
	})

	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestCompleteEndedBookings(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	cache := mocks.NewScheduleCache(t)
	now := date(8, 1)

	svc := services.NewBookingService(yurtRepo, bookingRepo,
		services.WithScheduleCache(cache),
		services.WithClock(func() time.Time { return now }),
	)

	ctx := context.Background()
	ok := domain.Booking{ID: uuid.New(), YurtID: uuid.New(), Status: domain.BookingConfirmed}
	stale := domain.Booking{ID: uuid.New(), YurtID: uuid.New(), Status: domain.BookingConfirmed}

	bookingRepo.On("ListEndedConfirmed", ctx, now, mock.AnythingOfType("int")).Return([]domain.Booking{ok, stale}, nil)
	bookingRepo.On("UpdateStatus", ctx, ok.ID, domain.BookingConfirmed, domain.BookingCompleted).Return(nil)
	bookingRepo.On("UpdateStatus", ctx, stale.ID, domain.BookingConfirmed, domain.BookingCompleted).
		Return(domain.NewConflict("booking %s was modified concurrently", stale.ID))
	cache.On("Invalidate", ctx, ok.YurtID).Return(nil)

	n, err := svc.CompleteEndedBookings(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpdateBooking_RejectedStatusLeavesDatesUntouched(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	guest := customer()
	yurt := newYurt(uuid.New())
	booking := &domain.Booking{
		ID: uuid.New(), UserID: guest.AccountID, YurtID: yurt.ID,
		StartDate: date(6, 1), EndDate: date(6, 3), TotalPrice: decimal.NewFromInt(240), Status: domain.BookingPending,
	}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, &booking.ID).Return(false, nil)

	start, end := date(7, 1), date(7, 5)
	status := string(domain.BookingConfirmed)
	_, err := svc.UpdateBooking(ctx, guest, services.UpdateBookingRequest{
		ID: booking.ID.String(), StartDate: &start, EndDate: &end, Status: &status,
	})

	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	bookingRepo.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything)
	bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, date(6, 1).Equal(booking.StartDate))
	assert.True(t, decimal.NewFromInt(240).Equal(booking.TotalPrice))
}

func TestUpdateBooking_RescheduleAndCancelTogether(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	svc := services.NewBookingService(yurtRepo, bookingRepo)

	ctx := context.Background()
	guest := customer()
	yurt := newYurt(uuid.New())
	booking := &domain.Booking{
		ID: uuid.New(), UserID: guest.AccountID, YurtID: yurt.ID,
		StartDate: date(6, 1), EndDate: date(6, 3), Status: domain.BookingPending,
	}

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, &booking.ID).Return(false, nil)
	bookingRepo.On("UpdateSchedule", ctx, booking).Return(nil)
	bookingRepo.On("UpdateStatus", ctx, booking.ID, domain.BookingPending, domain.BookingCancelled).Return(nil)

	end := date(6, 4)
	status := string(domain.BookingCancelled)
	got, err := svc.UpdateBooking(ctx, guest, services.UpdateBookingRequest{ID: booking.ID.String(), EndDate: &end, Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.True(t, end.Equal(got.EndDate))
}

func TestAuditorUsesServiceClock(t *testing.T) {
	yurtRepo := mocks.NewYurtRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	sink := mocks.NewAuditSink(t)
	now := time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC)

	svc := services.NewBookingService(yurtRepo, bookingRepo,
		services.WithAuditor(services.NewAuditor(sink, nil)),
		services.WithClock(func() time.Time { return now }),
	)

	ctx := context.Background()
	yurt := newYurt(uuid.New())

	yurtRepo.On("GetByID", ctx, yurt.ID).Return(yurt, nil)
	bookingRepo.On("HasOverlap", ctx, yurt.ID, mock.Anything, (*uuid.UUID)(nil)).Return(false, nil)
	bookingRepo.On("Create", ctx, mock.Anything).Return(nil)
	sink.On("Append", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == "create" && e.At.Equal(now)
	})).Return(nil)

	_, err := svc.CreateBooking(ctx, customer(), services.CreateBookingRequest{
		YurtID:    yurt.ID.String(),
		StartDate: date(7, 1),
		EndDate:   date(7, 2),
	})

	require.NoError(t, err)
}
