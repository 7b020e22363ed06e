package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Travel is a packaged trip with a fixed number of seats per departure date.
type Travel struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"ownerId"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	MaxPeople int             `json:"maxPeople"`
}

type TravelBooking struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	TravelID       uuid.UUID       `json:"travelId"`
	StartDate      time.Time       `json:"startDate"`
	NumberOfPeople int             `json:"numberOfPeople"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Status         BookingStatus   `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type TravelBookingFilter struct {
	UserID   uuid.UUID
	TravelID uuid.UUID
	Status   BookingStatus
}
