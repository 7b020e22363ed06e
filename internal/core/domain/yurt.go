package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Yurt is a bookable camp unit owned by a herder.
type Yurt struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"ownerId"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
}

// ScheduleEntry is one occupied interval of a yurt.
type ScheduleEntry struct {
	BookingID uuid.UUID     `json:"bookingId"`
	Range     DateRange     `json:"range"`
	Status    BookingStatus `json:"status"`
}
