// Package domain contains the core data types for the itinerary planner.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (planner, repo, service, handler).
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultTripDays is the day budget used when a trip has neither an explicit
// day count nor an end date.
const DefaultTripDays = 7

// Trip is the top-level aggregate; every option and feedback row belongs to a trip.
// CityOrder is the ordered list of destinations and may name the same city more
// than once on a multi-leg trip.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CityOrder []string   `json:"city_order"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	TotalDays *int       `json:"total_days,omitempty"` // explicit override of the date range
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DayCount returns the total day budget for the trip.
// An explicit TotalDays wins; otherwise the inclusive span of the date range is
// used, and DefaultTripDays when no end date is known.
func (t Trip) DayCount() int {
	if t.TotalDays != nil {
		return *t.TotalDays
	}
	if t.EndDate != nil {
		days := t.EndDate.Sub(t.StartDate).Hours() / 24
		return int(math.Round(days)) + 1
	}
	return DefaultTripDays
}
