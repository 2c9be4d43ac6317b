package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestTrip_DayCount(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		trip domain.Trip
		want int
	}{
		{"explicit total wins", domain.Trip{StartDate: start, EndDate: &end, TotalDays: intPtr(4)}, 4},
		{"inclusive date range", domain.Trip{StartDate: start, EndDate: &end}, 10},
		{"same day trip", domain.Trip{StartDate: start, EndDate: &start}, 1},
		{"no end date", domain.Trip{StartDate: start}, domain.DefaultTripDays},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.trip.DayCount())
		})
	}
}

// A DST shift makes the range 23 or 25 hours short/long; rounding absorbs it.
func TestTrip_DayCount_RoundsAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2025, 3, 28, 0, 0, 0, 0, loc)
	end := time.Date(2025, 4, 2, 0, 0, 0, 0, loc)

	trip := domain.Trip{StartDate: start, EndDate: &end}

	assert.Equal(t, 6, trip.DayCount())
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "paris", domain.NormalizeCity("  Paris "))
	assert.Equal(t, "são paulo", domain.NormalizeCity("SÃO PAULO"))
	assert.Equal(t, "", domain.NormalizeCity("   "))
}

func TestNewPaginationParams(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)

	p = domain.NewPaginationParams(intPtr(3), intPtr(500))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())

	p = domain.NewPaginationParams(intPtr(0), intPtr(-1))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)
}
