package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/handler"
	"github.com/pkordes/itinerary-planner/internal/planner"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields a test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type transition func(ctx context.Context, tripID, optionID uuid.UUID) ([]domain.SelectionChange, error)

type mockOptionServicer struct {
	addFlights       func(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error)
	listFlights      func(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error)
	addHotels        func(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error)
	listHotels       func(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error)
	selectOutbound   transition
	selectReturn     transition
	selectHotel      transition
	unselectHotel    transition
	unselectOutbound func(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error)
	unselectReturn   func(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error)
}

func (m *mockOptionServicer) AddFlights(ctx context.Context, tripID uuid.UUID, f []domain.FlightOption) ([]domain.FlightOption, error) {
	return m.addFlights(ctx, tripID, f)
}
func (m *mockOptionServicer) ListFlights(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error) {
	return m.listFlights(ctx, tripID)
}
func (m *mockOptionServicer) AddHotels(ctx context.Context, tripID uuid.UUID, h []domain.HotelOption) ([]domain.HotelOption, error) {
	return m.addHotels(ctx, tripID, h)
}
func (m *mockOptionServicer) ListHotels(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error) {
	return m.listHotels(ctx, tripID)
}
func (m *mockOptionServicer) SelectOutbound(ctx context.Context, tripID, id uuid.UUID) ([]domain.SelectionChange, error) {
	return m.selectOutbound(ctx, tripID, id)
}
func (m *mockOptionServicer) UnselectOutbound(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error) {
	return m.unselectOutbound(ctx, tripID)
}
func (m *mockOptionServicer) SelectReturn(ctx context.Context, tripID, id uuid.UUID) ([]domain.SelectionChange, error) {
	return m.selectReturn(ctx, tripID, id)
}
func (m *mockOptionServicer) UnselectReturn(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error) {
	return m.unselectReturn(ctx, tripID)
}
func (m *mockOptionServicer) SelectHotel(ctx context.Context, tripID, id uuid.UUID) ([]domain.SelectionChange, error) {
	return m.selectHotel(ctx, tripID, id)
}
func (m *mockOptionServicer) UnselectHotel(ctx context.Context, tripID, id uuid.UUID) ([]domain.SelectionChange, error) {
	return m.unselectHotel(ctx, tripID, id)
}

type mockFeedbackServicer struct {
	add         func(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error)
	list        func(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error)
	swipe       func(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error)
	preferences func(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]planner.CityPreference, error)
}

func (m *mockFeedbackServicer) Add(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error) {
	return m.add(ctx, tripID, items)
}
func (m *mockFeedbackServicer) List(ctx context.Context, tripID uuid.UUID, c domain.FeedbackCategory) ([]domain.ActivityFeedback, error) {
	return m.list(ctx, tripID, c)
}
func (m *mockFeedbackServicer) Swipe(ctx context.Context, tripID, id uuid.UUID, s domain.FeedbackStatus) (domain.ActivityFeedback, error) {
	return m.swipe(ctx, tripID, id, s)
}
func (m *mockFeedbackServicer) Preferences(ctx context.Context, tripID uuid.UUID, c domain.FeedbackCategory) ([]planner.CityPreference, error) {
	return m.preferences(ctx, tripID, c)
}

type mockBookingServicer struct {
	get func(ctx context.Context, tripID, hotelID uuid.UUID, link string) (domain.BookingOptions, error)
}

func (m *mockBookingServicer) Get(ctx context.Context, tripID, hotelID uuid.UUID, link string) (domain.BookingOptions, error) {
	return m.get(ctx, tripID, hotelID, link)
}

type mockPlanServicer struct {
	plan func(ctx context.Context, tripID uuid.UUID) (domain.Plan, error)
}

func (m *mockPlanServicer) Plan(ctx context.Context, tripID uuid.UUID) (domain.Plan, error) {
	return m.plan(ctx, tripID)
}

// compile-time checks: every mock must satisfy the interface it stands in for.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.OptionServicer   = (*mockOptionServicer)(nil)
	_ handler.FeedbackServicer = (*mockFeedbackServicer)(nil)
	_ handler.BookingServicer  = (*mockBookingServicer)(nil)
	_ handler.PlanServicer     = (*mockPlanServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve runs one request through the same router main.go mounts.
func serve(t *testing.T, deps handler.Deps, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(buf)
	}
	req := httptest.NewRequest(method, target, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.NewServer(deps).Routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}
