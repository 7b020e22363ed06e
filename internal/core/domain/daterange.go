package domain

import (
	"math"
	"time"
)

// DateRange is the half-open interval [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange rejects empty and inverted intervals.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, NewValidation("start and end dates are required",
			FieldError{Field: "startDate", Message: "required"},
			FieldError{Field: "endDate", Message: "required"},
		)
	}
	if !start.Before(end) {
		return DateRange{}, NewValidation("start date must be before end date",
			FieldError{Field: "endDate", Message: "must be after startDate"},
		)
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether the two intervals share an instant. A range that
// ends exactly when the other begins does not overlap it.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Nights is the number of billable nights; a partial day bills a full night.
func (r DateRange) Nights() int64 {
	return int64(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
