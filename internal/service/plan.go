package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/planner"
	"github.com/pkordes/itinerary-planner/internal/repo"
)

// SelectionLoader returns the current selection state of a trip.
// *SelectionService satisfies it.
type SelectionLoader interface {
	Load(ctx context.Context, tripID uuid.UUID) (*planner.Selection, error)
}

// PlanService lays out the days of a trip once its selections are complete.
type PlanService struct {
	trips      repo.TripRepo
	feedback   repo.FeedbackRepo
	selections SelectionLoader
	policy     planner.InclusionPolicy
	policyName string
}

// NewPlanService constructs a PlanService that weights cities with the named
// inclusion policy ("located" or "liked"). An unknown name is a config error
// and is rejected with domain.ErrValidation.
func NewPlanService(trips repo.TripRepo, feedback repo.FeedbackRepo, selections SelectionLoader, policyName string) (*PlanService, error) {
	policy, ok := planner.PolicyByName(policyName)
	if !ok {
		return nil, fmt.Errorf("service.NewPlanService: %w: unknown feedback policy %q", domain.ErrValidation, policyName)
	}
	if policyName == "" {
		policyName = "located"
	}
	return &PlanService{
		trips:      trips,
		feedback:   feedback,
		selections: selections,
		policy:     policy,
		policyName: policyName,
	}, nil
}

// Plan computes the city-day allocation of a trip.
// Returns domain.ErrInvalidState if the trip has no cities, or is missing an
// outbound flight, a return flight, or a hotel for one of its cities.
func (s *PlanService) Plan(ctx context.Context, tripID uuid.UUID) (domain.Plan, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	if len(trip.CityOrder) == 0 {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w: trip has no cities", domain.ErrInvalidState)
	}

	sel, err := s.selections.Load(ctx, tripID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	outbound, hasOutbound := sel.Outbound()
	ret, hasReturn := sel.Return()
	switch {
	case !hasOutbound:
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w: no outbound flight selected", domain.ErrInvalidState)
	case !hasReturn:
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w: no return flight selected", domain.ErrInvalidState)
	}
	if missing := sel.MissingCities(trip.CityOrder); len(missing) > 0 {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w: no hotel selected in %s",
			domain.ErrInvalidState, strings.Join(missing, ", "))
	}

	activities, err := s.feedback.ListByTrip(ctx, tripID, domain.CategoryActivity)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	totalDays := trip.DayCount()
	cities := planner.Allocate(planner.AllocationInput{
		CityOrder:     trip.CityOrder,
		TotalDays:     totalDays,
		Weights:       planner.CountPerOccurrence(activities, trip.CityOrder, s.policy),
		StartDate:     trip.StartDate,
		ArrivalHour:   hourOf(outbound.ArriveAt),
		DepartureHour: hourOf(ret.DepartAt),
	})

	hotels := make([]domain.HotelOption, len(cities))
	for i, c := range cities {
		hotels[i], _ = sel.HotelFor(c.CityLabel)
	}

	return domain.Plan{
		TripID:    tripID,
		TotalDays: totalDays,
		StartDate: trip.StartDate,
		Outbound:  outbound,
		Return:    ret,
		Cities:    cities,
		Hotels:    hotels,
		Policy:    s.policyName,
	}, nil
}

// hourOf reads the wall-clock hour of a local airport time.
func hourOf(t *time.Time) *int {
	if t == nil {
		return nil
	}
	h := t.Hour()
	return &h
}
