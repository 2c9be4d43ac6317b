package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{tripID}.
type TripRequest struct {
	Name      string              `json:"name"`
	CityOrder []string            `json:"city_order"`
	StartDate openapi_types.Date  `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	TotalDays *int                `json:"total_days,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
}

// Trip is the API representation of domain.Trip.
type Trip struct {
	ID        openapi_types.UUID  `json:"id"`
	Name      string              `json:"name"`
	CityOrder []string            `json:"city_order"`
	StartDate openapi_types.Date  `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	TotalDays *int                `json:"total_days,omitempty"`
	DayCount  int                 `json:"day_count"`
	Notes     *string             `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Pagination describes the page a list response holds.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.trips.Create(r.Context(), requestToTrip(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("page must be an integer"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("limit must be an integer"))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	result, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Trip, len(result.Items))
	for i, t := range result.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(result.Total),
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.trips.Update(r.Context(), requestToTrip(tripID, body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), tripID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a request body into a domain.Trip with the given ID.
func requestToTrip(id uuid.UUID, body TripRequest) domain.Trip {
	t := domain.Trip{
		ID:        id,
		Name:      body.Name,
		CityOrder: body.CityOrder,
		StartDate: body.StartDate.Time,
		TotalDays: body.TotalDays,
	}
	if t.CityOrder == nil {
		t.CityOrder = []string{}
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		t.EndDate = &ed
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

// tripToResponse converts a domain.Trip into its API representation.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:        t.ID,
		Name:      t.Name,
		CityOrder: t.CityOrder,
		StartDate: openapi_types.Date{Time: t.StartDate},
		TotalDays: t.TotalDays,
		DayCount:  t.DayCount(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if resp.CityOrder == nil {
		resp.CityOrder = []string{}
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	if t.EndDate != nil {
		ed := openapi_types.Date{Time: *t.EndDate}
		resp.EndDate = &ed
	}
	return resp
}
