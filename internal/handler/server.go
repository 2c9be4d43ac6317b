// Package handler implements the HTTP handlers for the itinerary planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, option.go, etc.) but share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/planner"
)

// TripServicer defines the business operations the trip handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionServicer covers flight and hotel ingest and the selection transitions.
type OptionServicer interface {
	AddFlights(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error)
	ListFlights(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error)
	AddHotels(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error)
	ListHotels(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error)

	SelectOutbound(ctx context.Context, tripID, flightID uuid.UUID) ([]domain.SelectionChange, error)
	UnselectOutbound(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error)
	SelectReturn(ctx context.Context, tripID, flightID uuid.UUID) ([]domain.SelectionChange, error)
	UnselectReturn(ctx context.Context, tripID uuid.UUID) ([]domain.SelectionChange, error)
	SelectHotel(ctx context.Context, tripID, hotelID uuid.UUID) ([]domain.SelectionChange, error)
	UnselectHotel(ctx context.Context, tripID, hotelID uuid.UUID) ([]domain.SelectionChange, error)
}

// FeedbackServicer covers activity and restaurant suggestions.
type FeedbackServicer interface {
	Add(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error)
	List(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error)
	Swipe(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error)
	Preferences(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]planner.CityPreference, error)
}

// BookingServicer looks up cached hotel booking options.
type BookingServicer interface {
	Get(ctx context.Context, tripID, hotelID uuid.UUID, detailLink string) (domain.BookingOptions, error)
}

// PlanServicer computes the day plan of a trip.
type PlanServicer interface {
	Plan(ctx context.Context, tripID uuid.UUID) (domain.Plan, error)
}

// Deps are the services a Server dispatches to. Tests may leave unused
// services nil.
type Deps struct {
	Trips    TripServicer
	Options  OptionServicer
	Feedback FeedbackServicer
	Booking  BookingServicer
	Plans    PlanServicer
	Logger   *slog.Logger
	// OpenAPI is served verbatim at /openapi.yaml when non-empty.
	OpenAPI []byte
}

// Server holds the dependencies of every handler.
type Server struct {
	trips    TripServicer
	options  OptionServicer
	feedback FeedbackServicer
	booking  BookingServicer
	plans    PlanServicer
	log      *slog.Logger
	openAPI  []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		trips:    d.Trips,
		options:  d.Options,
		feedback: d.Feedback,
		booking:  d.Booking,
		plans:    d.Plans,
		log:      log,
		openAPI:  d.OpenAPI,
	}
}

// Routes returns the API routes. main.go mounts them under the middleware
// stack; tests call ServeHTTP on the result directly.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/flights", s.AddFlights)
			r.Get("/flights", s.ListFlights)
			r.Put("/flights/outbound/selection", s.SelectOutbound)
			r.Delete("/flights/outbound/selection", s.UnselectOutbound)
			r.Put("/flights/return/selection", s.SelectReturn)
			r.Delete("/flights/return/selection", s.UnselectReturn)

			r.Post("/hotels", s.AddHotels)
			r.Get("/hotels", s.ListHotels)
			r.Put("/hotels/{hotelID}/selection", s.SelectHotel)
			r.Delete("/hotels/{hotelID}/selection", s.UnselectHotel)
			r.Get("/hotels/{hotelID}/booking-options", s.GetBookingOptions)

			r.Post("/feedback", s.AddFeedback)
			r.Get("/feedback", s.ListFeedback)
			r.Put("/feedback/{feedbackID}", s.SwipeFeedback)
			r.Get("/preferences", s.GetPreferences)

			r.Get("/plan", s.GetPlan)
		})
	})
	return r
}
