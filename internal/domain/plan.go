package domain

import (
	"time"

	"github.com/google/uuid"
)

// CityDayAllocation is the slice of the trip calendar assigned to one occurrence
// of a city in the trip's CityOrder.
// DayCount spans the calendar; EffectiveDayCount excludes days lost to a late
// arrival or an early departure.
type CityDayAllocation struct {
	CityLabel         string    `json:"city_label"`
	OccurrenceIndex   int       `json:"occurrence_index"`
	DayCount          int       `json:"day_count"`
	EffectiveDayCount int       `json:"effective_day_count"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
}

// SelectionTarget names the table a SelectionChange applies to.
type SelectionTarget string

const (
	TargetFlight SelectionTarget = "flight"
	TargetHotel  SelectionTarget = "hotel"
)

// SelectionChange is one selected-flag write produced by a selection transition.
type SelectionChange struct {
	OptionID uuid.UUID       `json:"option_id"`
	Target   SelectionTarget `json:"target"`
	Selected bool            `json:"selected"`
}

// Plan is the day-by-day layout of a trip whose selections are complete.
type Plan struct {
	TripID    uuid.UUID           `json:"trip_id"`
	TotalDays int                 `json:"total_days"`
	StartDate time.Time           `json:"start_date"`
	Outbound  FlightOption        `json:"outbound"`
	Return    FlightOption        `json:"return"`
	Cities    []CityDayAllocation `json:"cities"`
	Hotels    []HotelOption       `json:"hotels"` // aligned with Cities
	Policy    string              `json:"policy"`
}
