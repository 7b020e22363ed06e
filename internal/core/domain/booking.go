package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	YurtID     uuid.UUID       `json:"yurtId"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

type BookingFilter struct {
	UserID uuid.UUID
	YurtID uuid.UUID
	Status BookingStatus
}
