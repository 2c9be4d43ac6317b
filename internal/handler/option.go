package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// FlightRequest is one element of the POST /trips/{tripID}/flights body.
type FlightRequest struct {
	Kind              domain.FlightKind `json:"kind"`
	Airline           string            `json:"airline,omitempty"`
	FlightNumber      string            `json:"flight_number,omitempty"`
	Price             float64           `json:"price"`
	Currency          string            `json:"currency,omitempty"`
	DepartAt          *LocalTime        `json:"depart_at,omitempty"`
	ArriveAt          *LocalTime        `json:"arrive_at,omitempty"`
	ContinuationToken string            `json:"continuation_token,omitempty"`
}

// Flight is the API representation of domain.FlightOption.
type Flight struct {
	ID                openapi_types.UUID `json:"id"`
	Kind              domain.FlightKind  `json:"kind"`
	Airline           string             `json:"airline,omitempty"`
	FlightNumber      string             `json:"flight_number,omitempty"`
	Price             float64            `json:"price"`
	Currency          string             `json:"currency,omitempty"`
	DepartAt          *LocalTime         `json:"depart_at,omitempty"`
	ArriveAt          *LocalTime         `json:"arrive_at,omitempty"`
	ContinuationToken string             `json:"continuation_token,omitempty"`
	Selected          bool               `json:"selected"`
	CreatedAt         time.Time          `json:"created_at"`
}

// HotelRequest is one element of the POST /trips/{tripID}/hotels body.
type HotelRequest struct {
	CityLabel  string  `json:"city_label"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency,omitempty"`
	DetailLink string  `json:"detail_link,omitempty"`
}

// FlightSelectionRequest is the body of PUT .../flights/{kind}/selection.
type FlightSelectionRequest struct {
	FlightID openapi_types.UUID `json:"flight_id"`
}

// SelectionResponse lists the selected-flag writes a transition made.
type SelectionResponse struct {
	Changes []domain.SelectionChange `json:"changes"`
}

// AddFlights handles POST /trips/{tripID}/flights.
func (s *Server) AddFlights(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body []FlightRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	flights := make([]domain.FlightOption, len(body))
	for i, f := range body {
		flights[i] = domain.FlightOption{
			Kind:              f.Kind,
			Airline:           f.Airline,
			FlightNumber:      f.FlightNumber,
			Price:             f.Price,
			Currency:          f.Currency,
			DepartAt:          timePtr(f.DepartAt),
			ArriveAt:          timePtr(f.ArriveAt),
			ContinuationToken: f.ContinuationToken,
		}
	}
	created, err := s.options.AddFlights(r.Context(), tripID, flights)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listResponse[Flight]{Data: flightsToResponse(created)})
}

// ListFlights handles GET /trips/{tripID}/flights.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	flights, err := s.options.ListFlights(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Flight]{Data: flightsToResponse(flights)})
}

// AddHotels handles POST /trips/{tripID}/hotels.
func (s *Server) AddHotels(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body []HotelRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	hotels := make([]domain.HotelOption, len(body))
	for i, h := range body {
		hotels[i] = domain.HotelOption{
			CityLabel:  h.CityLabel,
			Name:       h.Name,
			Price:      h.Price,
			Currency:   h.Currency,
			DetailLink: h.DetailLink,
		}
	}
	created, err := s.options.AddHotels(r.Context(), tripID, hotels)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listResponse[domain.HotelOption]{Data: created})
}

// ListHotels handles GET /trips/{tripID}/hotels.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	hotels, err := s.options.ListHotels(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.HotelOption]{Data: hotels})
}

// SelectOutbound handles PUT /trips/{tripID}/flights/outbound/selection.
func (s *Server) SelectOutbound(w http.ResponseWriter, r *http.Request) {
	s.selectFlight(w, r, s.options.SelectOutbound)
}

// SelectReturn handles PUT /trips/{tripID}/flights/return/selection.
func (s *Server) SelectReturn(w http.ResponseWriter, r *http.Request) {
	s.selectFlight(w, r, s.options.SelectReturn)
}

// UnselectOutbound handles DELETE /trips/{tripID}/flights/outbound/selection.
func (s *Server) UnselectOutbound(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	changes, err := s.options.UnselectOutbound(r.Context(), tripID)
	s.writeSelection(w, r, changes, err)
}

// UnselectReturn handles DELETE /trips/{tripID}/flights/return/selection.
func (s *Server) UnselectReturn(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	changes, err := s.options.UnselectReturn(r.Context(), tripID)
	s.writeSelection(w, r, changes, err)
}

// SelectHotel handles PUT /trips/{tripID}/hotels/{hotelID}/selection.
func (s *Server) SelectHotel(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	hotelID, ok := pathUUID(w, r, "hotelID")
	if !ok {
		return
	}
	changes, err := s.options.SelectHotel(r.Context(), tripID, hotelID)
	s.writeSelection(w, r, changes, err)
}

// UnselectHotel handles DELETE /trips/{tripID}/hotels/{hotelID}/selection.
func (s *Server) UnselectHotel(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	hotelID, ok := pathUUID(w, r, "hotelID")
	if !ok {
		return
	}
	changes, err := s.options.UnselectHotel(r.Context(), tripID, hotelID)
	s.writeSelection(w, r, changes, err)
}

// selectFlight decodes the chosen flight and runs one of the flight
// selection transitions.
func (s *Server) selectFlight(w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, tripID, flightID uuid.UUID) ([]domain.SelectionChange, error),
) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body FlightSelectionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.FlightID == uuid.Nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("flight_id is required"))
		return
	}
	changes, err := transition(r.Context(), tripID, body.FlightID)
	s.writeSelection(w, r, changes, err)
}

func (s *Server) writeSelection(w http.ResponseWriter, r *http.Request, changes []domain.SelectionChange, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if changes == nil {
		changes = []domain.SelectionChange{}
	}
	writeJSON(w, http.StatusOK, SelectionResponse{Changes: changes})
}

func flightsToResponse(flights []domain.FlightOption) []Flight {
	out := make([]Flight, len(flights))
	for i, f := range flights {
		out[i] = Flight{
			ID:                f.ID,
			Kind:              f.Kind,
			Airline:           f.Airline,
			FlightNumber:      f.FlightNumber,
			Price:             f.Price,
			Currency:          f.Currency,
			DepartAt:          localTimePtr(f.DepartAt),
			ArriveAt:          localTimePtr(f.ArriveAt),
			ContinuationToken: f.ContinuationToken,
			Selected:          f.Selected,
			CreatedAt:         f.CreatedAt,
		}
	}
	return out
}
