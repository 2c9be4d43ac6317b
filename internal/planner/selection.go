package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// Selection is the flight and hotel selection state of one trip.
//
// It holds at most one selected outbound flight, at most one selected return
// flight and at most one selected hotel per normalized city. Each transition
// validates first and only then mutates, so a failed call leaves the state
// untouched. The changed flags are returned for the caller to persist.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	tripID uuid.UUID

	flights     map[uuid.UUID]*domain.FlightOption
	flightOrder []uuid.UUID
	hotels      map[uuid.UUID]*domain.HotelOption
	hotelOrder  []uuid.UUID

	outbound     uuid.UUID // uuid.Nil when none
	ret          uuid.UUID
	hotelsByCity map[string]uuid.UUID

	// pending holds repairs of inconsistent loaded state, flushed with the
	// next successful transition.
	pending []domain.SelectionChange
}

// NewSelection builds the selection state for a trip from its stored options.
// Options belonging to other trips are ignored. If the stored flags break an
// invariant, the first selected option in input order is kept and the others
// are cleared; those clears are reported by the next transition.
func NewSelection(tripID uuid.UUID, flights []domain.FlightOption, hotels []domain.HotelOption) *Selection {
	s := &Selection{
		tripID:       tripID,
		flights:      make(map[uuid.UUID]*domain.FlightOption, len(flights)),
		hotels:       make(map[uuid.UUID]*domain.HotelOption, len(hotels)),
		hotelsByCity: make(map[string]uuid.UUID),
	}

	for _, f := range flights {
		if f.TripID != tripID {
			continue
		}
		s.flights[f.ID] = &f
		s.flightOrder = append(s.flightOrder, f.ID)
		if !f.Selected {
			continue
		}
		slot := &s.outbound
		if f.Kind == domain.FlightReturn {
			slot = &s.ret
		}
		if *slot == uuid.Nil {
			*slot = f.ID
			continue
		}
		s.flights[f.ID].Selected = false
		s.pending = append(s.pending, flightChange(f.ID, false))
	}

	for _, h := range hotels {
		if h.TripID != tripID {
			continue
		}
		s.hotels[h.ID] = &h
		s.hotelOrder = append(s.hotelOrder, h.ID)
		if !h.Selected {
			continue
		}
		city := domain.NormalizeCity(h.CityLabel)
		if _, taken := s.hotelsByCity[city]; !taken {
			s.hotelsByCity[city] = h.ID
			continue
		}
		s.hotels[h.ID].Selected = false
		s.pending = append(s.pending, hotelChange(h.ID, false))
	}

	// A return without an outbound cannot exist.
	if s.ret != uuid.Nil && s.outbound == uuid.Nil {
		s.pending = append(s.pending, s.clearReturn()...)
	}
	return s
}

// SelectOutbound selects the outbound flight id. Choosing a different outbound
// than the current one also clears the selected return, whose relevance
// depended on the previous outbound.
func (s *Selection) SelectOutbound(id uuid.UUID) ([]domain.SelectionChange, error) {
	f, err := s.flight(id)
	if err != nil {
		return nil, fmt.Errorf("planner.Selection.SelectOutbound: %w", err)
	}
	if f.Kind != domain.FlightOutbound {
		return nil, fmt.Errorf("planner.Selection.SelectOutbound: %w: flight %s is a %s flight", domain.ErrInvalidState, id, f.Kind)
	}

	var changes []domain.SelectionChange
	if s.outbound != id {
		changes = append(changes, s.clearReturn()...)
		changes = append(changes, s.clearOutbound()...)
	}
	f.Selected = true
	s.outbound = id
	changes = append(changes, flightChange(id, true))
	return s.flush(changes), nil
}

// SelectReturn selects the return flight id. An outbound flight must already
// be selected.
func (s *Selection) SelectReturn(id uuid.UUID) ([]domain.SelectionChange, error) {
	f, err := s.flight(id)
	if err != nil {
		return nil, fmt.Errorf("planner.Selection.SelectReturn: %w", err)
	}
	if f.Kind != domain.FlightReturn {
		return nil, fmt.Errorf("planner.Selection.SelectReturn: %w: flight %s is a %s flight", domain.ErrInvalidState, id, f.Kind)
	}
	if s.outbound == uuid.Nil {
		return nil, fmt.Errorf("planner.Selection.SelectReturn: %w: select an outbound flight first", domain.ErrInvalidState)
	}

	var changes []domain.SelectionChange
	if s.ret != id {
		changes = append(changes, s.clearReturn()...)
	}
	f.Selected = true
	s.ret = id
	changes = append(changes, flightChange(id, true))
	return s.flush(changes), nil
}

// UnselectOutbound clears the outbound selection and, with it, the return.
func (s *Selection) UnselectOutbound() []domain.SelectionChange {
	changes := s.clearReturn()
	changes = append(changes, s.clearOutbound()...)
	return s.flush(changes)
}

// UnselectReturn clears the return selection.
func (s *Selection) UnselectReturn() []domain.SelectionChange {
	return s.flush(s.clearReturn())
}

// SelectHotel selects hotel id for its city, replacing any other hotel chosen
// for the same city. Other cities are not touched.
func (s *Selection) SelectHotel(id uuid.UUID) ([]domain.SelectionChange, error) {
	h, err := s.hotel(id)
	if err != nil {
		return nil, fmt.Errorf("planner.Selection.SelectHotel: %w", err)
	}

	city := domain.NormalizeCity(h.CityLabel)
	var changes []domain.SelectionChange
	if prev, ok := s.hotelsByCity[city]; ok && prev != id {
		s.hotels[prev].Selected = false
		changes = append(changes, hotelChange(prev, false))
	}
	h.Selected = true
	s.hotelsByCity[city] = id
	changes = append(changes, hotelChange(id, true))
	return s.flush(changes), nil
}

// UnselectHotel clears hotel id. The city's entry is only removed when it
// points at this hotel.
func (s *Selection) UnselectHotel(id uuid.UUID) ([]domain.SelectionChange, error) {
	h, err := s.hotel(id)
	if err != nil {
		return nil, fmt.Errorf("planner.Selection.UnselectHotel: %w", err)
	}

	h.Selected = false
	city := domain.NormalizeCity(h.CityLabel)
	if s.hotelsByCity[city] == id {
		delete(s.hotelsByCity, city)
	}
	return s.flush([]domain.SelectionChange{hotelChange(id, false)}), nil
}

// Outbound returns the selected outbound flight.
func (s *Selection) Outbound() (domain.FlightOption, bool) {
	return s.selectedFlight(s.outbound)
}

// Return returns the selected return flight.
func (s *Selection) Return() (domain.FlightOption, bool) {
	return s.selectedFlight(s.ret)
}

// HotelFor returns the hotel selected for city, compared in normalized form.
func (s *Selection) HotelFor(city string) (domain.HotelOption, bool) {
	id, ok := s.hotelsByCity[domain.NormalizeCity(city)]
	if !ok {
		return domain.HotelOption{}, false
	}
	return *s.hotels[id], true
}

// Flights returns a copy of every flight option in load order.
func (s *Selection) Flights() []domain.FlightOption {
	out := make([]domain.FlightOption, 0, len(s.flightOrder))
	for _, id := range s.flightOrder {
		out = append(out, *s.flights[id])
	}
	return out
}

// Hotels returns a copy of every hotel option in load order.
func (s *Selection) Hotels() []domain.HotelOption {
	out := make([]domain.HotelOption, 0, len(s.hotelOrder))
	for _, id := range s.hotelOrder {
		out = append(out, *s.hotels[id])
	}
	return out
}

// MissingCities returns the distinct cities of cityOrder, in first-seen
// spelling, that have no selected hotel.
func (s *Selection) MissingCities(cityOrder []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, c := range cityOrder {
		key := domain.NormalizeCity(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := s.hotelsByCity[key]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// Ready reports whether both flights are chosen and every city in cityOrder
// has a hotel, which is when a day plan can be computed.
func (s *Selection) Ready(cityOrder []string) bool {
	return s.outbound != uuid.Nil && s.ret != uuid.Nil && len(s.MissingCities(cityOrder)) == 0
}

func (s *Selection) flight(id uuid.UUID) (*domain.FlightOption, error) {
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("%w: flight %s on trip %s", domain.ErrNotFound, id, s.tripID)
	}
	return f, nil
}

func (s *Selection) hotel(id uuid.UUID) (*domain.HotelOption, error) {
	h, ok := s.hotels[id]
	if !ok {
		return nil, fmt.Errorf("%w: hotel %s on trip %s", domain.ErrNotFound, id, s.tripID)
	}
	return h, nil
}

func (s *Selection) selectedFlight(id uuid.UUID) (domain.FlightOption, bool) {
	if id == uuid.Nil {
		return domain.FlightOption{}, false
	}
	return *s.flights[id], true
}

func (s *Selection) clearOutbound() []domain.SelectionChange {
	if s.outbound == uuid.Nil {
		return nil
	}
	id := s.outbound
	s.flights[id].Selected = false
	s.outbound = uuid.Nil
	return []domain.SelectionChange{flightChange(id, false)}
}

func (s *Selection) clearReturn() []domain.SelectionChange {
	if s.ret == uuid.Nil {
		return nil
	}
	id := s.ret
	s.flights[id].Selected = false
	s.ret = uuid.Nil
	return []domain.SelectionChange{flightChange(id, false)}
}

// flush prepends outstanding repairs to changes and forgets them.
func (s *Selection) flush(changes []domain.SelectionChange) []domain.SelectionChange {
	out := append(s.pending, changes...)
	s.pending = nil
	if out == nil {
		return []domain.SelectionChange{}
	}
	return out
}

func flightChange(id uuid.UUID, selected bool) domain.SelectionChange {
	return domain.SelectionChange{OptionID: id, Target: domain.TargetFlight, Selected: selected}
}

func hotelChange(id uuid.UUID, selected bool) domain.SelectionChange {
	return domain.SelectionChange{OptionID: id, Target: domain.TargetHotel, Selected: selected}
}
