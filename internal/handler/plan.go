package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV plan.
var csvHeaders = []string{
	"city_label", "occurrence_index", "day_count", "effective_day_count",
	"start_date", "end_date", "hotel_name", "hotel_detail_link",
}

// PlanCity is one row of a plan: a city visit and where the traveller sleeps.
type PlanCity struct {
	CityLabel         string             `json:"city_label"`
	OccurrenceIndex   int                `json:"occurrence_index"`
	DayCount          int                `json:"day_count"`
	EffectiveDayCount int                `json:"effective_day_count"`
	StartDate         openapi_types.Date `json:"start_date"`
	EndDate           openapi_types.Date `json:"end_date"`
	Hotel             domain.HotelOption `json:"hotel"`
}

// Plan is the body of GET /trips/{tripID}/plan.
type Plan struct {
	TripID    openapi_types.UUID `json:"trip_id"`
	TotalDays int                `json:"total_days"`
	StartDate openapi_types.Date `json:"start_date"`
	Policy    string             `json:"policy"`
	Outbound  Flight             `json:"outbound"`
	Return    Flight             `json:"return"`
	Cities    []PlanCity         `json:"cities"`
}

// GetPlan handles GET /trips/{tripID}/plan.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
		return
	}

	plan, err := s.plans.Plan(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == "csv" {
		body := buildCSV(plan)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// planToResponse flattens a domain.Plan, pairing each city with its hotel.
func planToResponse(p domain.Plan) Plan {
	flights := flightsToResponse([]domain.FlightOption{p.Outbound, p.Return})
	resp := Plan{
		TripID:    p.TripID,
		TotalDays: p.TotalDays,
		StartDate: openapi_types.Date{Time: p.StartDate},
		Policy:    p.Policy,
		Outbound:  flights[0],
		Return:    flights[1],
		Cities:    make([]PlanCity, len(p.Cities)),
	}
	for i, c := range p.Cities {
		resp.Cities[i] = PlanCity{
			CityLabel:         c.CityLabel,
			OccurrenceIndex:   c.OccurrenceIndex,
			DayCount:          c.DayCount,
			EffectiveDayCount: c.EffectiveDayCount,
			StartDate:         openapi_types.Date{Time: c.StartDate},
			EndDate:           openapi_types.Date{Time: c.EndDate},
			Hotel:             hotelAt(p.Hotels, i),
		}
	}
	return resp
}

// buildCSV encodes one row per city visit.
func buildCSV(p domain.Plan) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for i, c := range p.Cities {
		hotel := hotelAt(p.Hotels, i)
		//nolint:errcheck
		w.Write([]string{
			c.CityLabel,
			strconv.Itoa(c.OccurrenceIndex),
			strconv.Itoa(c.DayCount),
			strconv.Itoa(c.EffectiveDayCount),
			c.StartDate.Format(openapi_types.DateFormat),
			c.EndDate.Format(openapi_types.DateFormat),
			hotel.Name,
			hotel.DetailLink,
		})
	}
	w.Flush()
	return &buf
}

func hotelAt(hotels []domain.HotelOption, i int) domain.HotelOption {
	if i < len(hotels) {
		return hotels[i]
	}
	return domain.HotelOption{}
}
