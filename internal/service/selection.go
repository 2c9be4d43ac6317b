package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/planner"
	"github.com/pkordes/itinerary-planner/internal/repo"
)

// SelectionService ingests flight and hotel options and drives the selection
// state machine of a trip. Each transition loads the trip's options, applies
// the change in memory and persists the resulting flag writes in one
// transaction, all while holding the trip's lock.
type SelectionService struct {
	trips      repo.TripRepo
	flights    repo.FlightRepo
	hotels     repo.HotelRepo
	selections repo.SelectionRepo
	locks      *tripLocks
}

// NewSelectionService constructs a SelectionService.
func NewSelectionService(trips repo.TripRepo, flights repo.FlightRepo, hotels repo.HotelRepo, selections repo.SelectionRepo) *SelectionService {
	return &SelectionService{
		trips:      trips,
		flights:    flights,
		hotels:     hotels,
		selections: selections,
		locks:      newTripLocks(),
	}
}

// AddFlights stores flight search results for a trip. New options are never
// selected. Returns domain.ErrValidation if any option is invalid; nothing is
// stored in that case.
func (s *SelectionService) AddFlights(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error) {
	if len(flights) == 0 {
		return nil, fmt.Errorf("service.SelectionService.AddFlights: %w: at least one flight is required", domain.ErrValidation)
	}
	for i := range flights {
		flights[i].Selected = false
		if err := validateFlight(flights[i]); err != nil {
			return nil, fmt.Errorf("service.SelectionService.AddFlights: flights[%d]: %w", i, err)
		}
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.SelectionService.AddFlights: %w", err)
	}
	created, err := s.flights.CreateBatch(ctx, tripID, flights)
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.AddFlights: %w", err)
	}
	return created, nil
}

// ListFlights returns every flight option of a trip.
func (s *SelectionService) ListFlights(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.SelectionService.ListFlights: %w", err)
	}
	flights, err := s.flights.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.ListFlights: %w", err)
	}
	if flights == nil {
		return []domain.FlightOption{}, nil
	}
	return flights, nil
}

// AddHotels stores hotel search results for a trip.
func (s *SelectionService) AddHotels(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error) {
	if len(hotels) == 0 {
		return nil, fmt.Errorf("service.SelectionService.AddHotels: %w: at least one hotel is required", domain.ErrValidation)
	}
	for i := range hotels {
		hotels[i].Selected = false
		hotels[i].CityLabel = strings.TrimSpace(hotels[i].CityLabel)
		hotels[i].Name = strings.TrimSpace(hotels[i].Name)
		if err := validateHotel(hotels[i]); err != nil {
			return nil, fmt.Errorf("service.SelectionService.AddHotels: hotels[%d]: %w", i, err)
		}
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.SelectionService.AddHotels: %w", err)
	}
	created, err := s.hotels.CreateBatch(ctx, tripID, hotels)
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.AddHotels: %w", err)
	}
	return created, nil
}

// ListHotels returns every hotel option of a trip.
func (s *SelectionService) ListHotels(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.SelectionService.ListHotels: %w", err)
	}
	hotels, err := s.hotels.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.ListHotels: %w", err)
	}
	if hotels == nil {
		return []domain.HotelOption{}, nil
	}
	return hotels, nil
}

// Load returns the current selection state of a trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *SelectionService) Load(ctx context.Context, tripID uuid.UUID) (*planner.Selection, error) {
	sel, err := s.load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.Load: %w", err)
	}
	return sel, nil
}

// SelectOutbound selects an outbound flight. Choosing a different outbound
// also clears the selected return flight.
func (s *SelectionService) SelectOutbound(ctx context.Context, tripID, flightID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.SelectOutbound(flightID)
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.SelectOutbound: %w", err)
	}
	return changes, nil
}

// UnselectOutbound clears the outbound flight and, with it, the return flight.
func (s *SelectionService) UnselectOutbound(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.UnselectOutbound(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.UnselectOutbound: %w", err)
	}
	return changes, nil
}

// SelectReturn selects a return flight.
// Returns domain.ErrInvalidState when no outbound flight is selected.
func (s *SelectionService) SelectReturn(ctx context.Context, tripID, flightID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.SelectReturn(flightID)
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.SelectReturn: %w", err)
	}
	return changes, nil
}

// UnselectReturn clears the return flight.
func (s *SelectionService) UnselectReturn(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.UnselectReturn(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.UnselectReturn: %w", err)
	}
	return changes, nil
}

// SelectHotel selects a hotel, replacing any hotel selected in the same city.
func (s *SelectionService) SelectHotel(ctx context.Context, tripID, hotelID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.SelectHotel(hotelID)
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.SelectHotel: %w", err)
	}
	return changes, nil
}

// UnselectHotel clears a hotel selection. Unselecting a hotel that is not
// selected is a no-op.
func (s *SelectionService) UnselectHotel(ctx context.Context, tripID, hotelID uuid.UUID) ([]domain.SelectionChange, error) {
	changes, err := s.transition(ctx, tripID, func(sel *planner.Selection) ([]domain.SelectionChange, error) {
		return sel.UnselectHotel(hotelID)
	})
	if err != nil {
		return nil, fmt.Errorf("service.SelectionService.UnselectHotel: %w", err)
	}
	return changes, nil
}

// transition runs load, apply and persist under the trip's lock.
func (s *SelectionService) transition(ctx context.Context, tripID uuid.UUID, apply func(*planner.Selection) ([]domain.SelectionChange, error)) ([]domain.SelectionChange, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	sel, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	changes, err := apply(sel)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := s.selections.Apply(ctx, tripID, changes); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

func (s *SelectionService) load(ctx context.Context, tripID uuid.UUID) (*planner.Selection, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	flights, err := s.flights.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	hotels, err := s.hotels.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return planner.NewSelection(tripID, flights, hotels), nil
}

// validateFlight checks a single ingested flight.
//   - Kind must be outbound or return.
//   - Outbound flights carry the continuation token used to search returns;
//     return flights never do.
//   - Price must not be negative.
//
// DepartAt and ArriveAt are local to different airports, so their order is not
// checked.
func validateFlight(f domain.FlightOption) error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: kind must be outbound or return", domain.ErrValidation)
	}
	switch {
	case f.Kind == domain.FlightOutbound && strings.TrimSpace(f.ContinuationToken) == "":
		return fmt.Errorf("%w: outbound flights need a continuation_token", domain.ErrValidation)
	case f.Kind == domain.FlightReturn && f.ContinuationToken != "":
		return fmt.Errorf("%w: return flights have no continuation_token", domain.ErrValidation)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

func validateHotel(h domain.HotelOption) error {
	if h.CityLabel == "" {
		return fmt.Errorf("%w: city_label is required", domain.ErrValidation)
	}
	if h.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if h.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}
