package service_test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/planner"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockFlightRepo struct {
	createBatch func(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error)
}

func (m *mockFlightRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error) {
	return m.createBatch(ctx, tripID, flights)
}
func (m *mockFlightRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error) {
	return m.listByTrip(ctx, tripID)
}

type mockHotelRepo struct {
	createBatch func(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error)
	getByID     func(ctx context.Context, tripID, hotelID uuid.UUID) (domain.HotelOption, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error)
}

func (m *mockHotelRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error) {
	return m.createBatch(ctx, tripID, hotels)
}
func (m *mockHotelRepo) GetByID(ctx context.Context, tripID, hotelID uuid.UUID) (domain.HotelOption, error) {
	return m.getByID(ctx, tripID, hotelID)
}
func (m *mockHotelRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error) {
	return m.listByTrip(ctx, tripID)
}

type mockSelectionRepo struct {
	apply func(ctx context.Context, tripID uuid.UUID, changes []domain.SelectionChange) error
}

func (m *mockSelectionRepo) Apply(ctx context.Context, tripID uuid.UUID, changes []domain.SelectionChange) error {
	return m.apply(ctx, tripID, changes)
}

type mockFeedbackRepo struct {
	createBatch  func(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.ActivityFeedback, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error)
	updateStatus func(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error)
}

func (m *mockFeedbackRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error) {
	return m.createBatch(ctx, tripID, items)
}
func (m *mockFeedbackRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ActivityFeedback, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockFeedbackRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error) {
	return m.listByTrip(ctx, tripID, category)
}
func (m *mockFeedbackRepo) UpdateStatus(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error) {
	return m.updateStatus(ctx, tripID, id, status)
}

type mockBookingRepo struct {
	upsert     func(ctx context.Context, entry domain.BookingOptions) error
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.BookingOptions, error)
}

func (m *mockBookingRepo) Upsert(ctx context.Context, entry domain.BookingOptions) error {
	return m.upsert(ctx, entry)
}
func (m *mockBookingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BookingOptions, error) {
	return m.listByTrip(ctx, tripID)
}

type mockFetcher struct {
	fetch func(ctx context.Context, detailLink string) (json.RawMessage, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, detailLink string) (json.RawMessage, error) {
	return m.fetch(ctx, detailLink)
}

type mockSelectionLoader struct {
	load func(ctx context.Context, tripID uuid.UUID) (*planner.Selection, error)
}

func (m *mockSelectionLoader) Load(ctx context.Context, tripID uuid.UUID) (*planner.Selection, error) {
	return m.load(ctx, tripID)
}

// compile-time checks: every mock must satisfy the interface it stands in for.
var (
	_ repo.TripRepo           = (*mockTripRepo)(nil)
	_ repo.FlightRepo         = (*mockFlightRepo)(nil)
	_ repo.HotelRepo          = (*mockHotelRepo)(nil)
	_ repo.SelectionRepo      = (*mockSelectionRepo)(nil)
	_ repo.FeedbackRepo       = (*mockFeedbackRepo)(nil)
	_ repo.BookingRepo        = (*mockBookingRepo)(nil)
	_ service.Fetcher         = (*mockFetcher)(nil)
	_ service.SelectionLoader = (*mockSelectionLoader)(nil)
)

// tripRepoWith returns a TripRepo that knows exactly one trip.
func tripRepoWith(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}
