// Package service contains the business logic of the itinerary planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls
// around the pure engine in package planner.
// No SQL lives here. Services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update validates and updates an existing trip.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything that belongs to it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// normalizeTrip trims free-text fields. City labels keep their casing; only
// comparisons normalize them.
func normalizeTrip(trip domain.Trip) domain.Trip {
	trip.Name = strings.TrimSpace(trip.Name)
	cities := make([]string, len(trip.CityOrder))
	for i, c := range trip.CityOrder {
		cities[i] = strings.TrimSpace(c)
	}
	trip.CityOrder = cities
	return trip
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty.
//   - Every city label must be non-empty.
//   - EndDate, if set, must not be before StartDate.
//   - TotalDays, if set, must be at least 1.
func validateTrip(trip domain.Trip) error {
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	for i, c := range trip.CityOrder {
		if c == "" {
			return fmt.Errorf("%w: city_order[%d] is blank", domain.ErrValidation, i)
		}
	}
	if trip.EndDate != nil && trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.TotalDays != nil && *trip.TotalDays < 1 {
		return fmt.Errorf("%w: total_days must be at least 1", domain.ErrValidation)
	}
	return nil
}
