package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/handler"
)

func tripFixture() domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Iberia",
		CityOrder: []string{"Lisbon", "Porto", "Madrid"},
		StartDate: start,
		EndDate:   &end,
		Notes:     "test notes",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func tripDeps(svc handler.TripServicer) handler.Deps {
	return handler.Deps{Trips: svc}
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.Trip
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			got = trip
			return fixture, nil
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodPost, "/trips", map[string]any{
		"name":       "Iberia",
		"city_order": []string{"Lisbon", "Porto", "Madrid"},
		"start_date": "2025-06-01",
		"end_date":   "2025-06-10",
		"total_days": 9,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"Lisbon", "Porto", "Madrid"}, got.CityOrder)
	assert.Equal(t, fixture.StartDate, got.StartDate)
	require.NotNil(t, got.TotalDays)
	assert.Equal(t, 9, *got.TotalDays)

	resp := decode[handler.Trip](t, rec)
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, 10, resp.DayCount)
	assert.Equal(t, "2025-06-01", resp.StartDate.Format("2006-01-02"))
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: name is required", domain.ErrValidation)
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodPost, "/trips", map[string]any{"name": "", "start_date": "2025-06-01"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "name is required", resp.Error.Message)
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	rec := serve(t, tripDeps(&mockTripServicer{}), http.MethodPost, "/trips", `{"name":`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateTrip_422_BadDate(t *testing.T) {
	rec := serve(t, tripDeps(&mockTripServicer{}), http.MethodPost, "/trips",
		map[string]any{"name": "x", "start_date": "June 1st"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTrip_500_IsLoggedNotLeaked(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, errors.New("pq: connection refused")
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodPost, "/trips", map[string]any{"name": "x", "start_date": "2025-06-01"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200_Paged(t *testing.T) {
	var got domain.PaginationParams
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
			got = p
			return domain.Page[domain.Trip]{Items: []domain.Trip{tripFixture(), tripFixture()}, Total: 12}, nil
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodGet, "/trips?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, got)
	resp := decode[handler.TripList](t, rec)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 5, Total: 12}, resp.Pagination)
}

func TestListTrips_200_EmptyIsArray(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, _ domain.PaginationParams) (domain.Page[domain.Trip], error) {
			return domain.Page[domain.Trip]{Items: []domain.Trip{}}, nil
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_422_BadPage(t *testing.T) {
	rec := serve(t, tripDeps(&mockTripServicer{}), http.MethodGet, "/trips?page=two", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /trips/{tripID} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodGet, "/trips/"+fixture.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Trip](t, rec)
	assert.Equal(t, fixture.ID, resp.ID)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "test notes", *resp.Notes)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("repo.pgTripRepo.GetByID: %w", domain.ErrNotFound)
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodGet, "/trips/"+uuid.New().String(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetTrip_404_MalformedID(t *testing.T) {
	rec := serve(t, tripDeps(&mockTripServicer{}), http.MethodGet, "/trips/not-a-uuid", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /trips/{tripID} ---------------------------------------------------

func TestUpdateTrip_200_UsesPathID(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, trip.ID)
			return trip, nil
		},
	}

	rec := serve(t, tripDeps(svc), http.MethodPut, "/trips/"+fixture.ID.String(), map[string]any{
		"name":       "Updated Name",
		"start_date": "2025-06-01",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Trip](t, rec)
	assert.Equal(t, "Updated Name", resp.Name)
	assert.NotNil(t, resp.CityOrder)
}

// ---- DELETE /trips/{tripID} ------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{delete: func(_ context.Context, _ uuid.UUID) error { return nil }}

	rec := serve(t, tripDeps(svc), http.MethodDelete, "/trips/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound }}

	rec := serve(t, tripDeps(svc), http.MethodDelete, "/trips/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
