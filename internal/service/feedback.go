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

// FeedbackService manages swipeable activity and restaurant suggestions.
type FeedbackService struct {
	trips    repo.TripRepo
	feedback repo.FeedbackRepo
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(trips repo.TripRepo, feedback repo.FeedbackRepo) *FeedbackService {
	return &FeedbackService{trips: trips, feedback: feedback}
}

// Add stores new suggestions for a trip. Every item starts pending whatever
// status the caller sent.
func (s *FeedbackService) Add(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("service.FeedbackService.Add: %w: at least one item is required", domain.ErrValidation)
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].Location = strings.TrimSpace(items[i].Location)
		items[i].Status = domain.StatusPending
		if items[i].Category == "" {
			items[i].Category = domain.CategoryActivity
		}
		if !items[i].Category.Valid() {
			return nil, fmt.Errorf("service.FeedbackService.Add: items[%d]: %w: category must be activity or restaurant", i, domain.ErrValidation)
		}
		if items[i].Name == "" {
			return nil, fmt.Errorf("service.FeedbackService.Add: items[%d]: %w: name is required", i, domain.ErrValidation)
		}
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.FeedbackService.Add: %w", err)
	}
	created, err := s.feedback.CreateBatch(ctx, tripID, items)
	if err != nil {
		return nil, fmt.Errorf("service.FeedbackService.Add: %w", err)
	}
	return created, nil
}

// List returns the suggestions of a trip. An empty category lists both.
func (s *FeedbackService) List(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("service.FeedbackService.List: %w: unknown category %q", domain.ErrValidation, category)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.FeedbackService.List: %w", err)
	}
	items, err := s.feedback.ListByTrip(ctx, tripID, category)
	if err != nil {
		return nil, fmt.Errorf("service.FeedbackService.List: %w", err)
	}
	if items == nil {
		return []domain.ActivityFeedback{}, nil
	}
	return items, nil
}

// Swipe records a verdict on one suggestion. A verdict may be changed any
// number of times but never taken back to pending.
func (s *FeedbackService) Swipe(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error) {
	if !status.Valid() {
		return domain.ActivityFeedback{}, fmt.Errorf("service.FeedbackService.Swipe: %w: unknown status %q", domain.ErrValidation, status)
	}
	if status == domain.StatusPending {
		return domain.ActivityFeedback{}, fmt.Errorf("service.FeedbackService.Swipe: %w: cannot return to pending", domain.ErrInvalidState)
	}
	current, err := s.feedback.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.ActivityFeedback{}, fmt.Errorf("service.FeedbackService.Swipe: %w", err)
	}
	if current.Status == status {
		return current, nil
	}
	updated, err := s.feedback.UpdateStatus(ctx, tripID, id, status)
	if err != nil {
		return domain.ActivityFeedback{}, fmt.Errorf("service.FeedbackService.Swipe: %w", err)
	}
	return updated, nil
}

// Preferences summarizes the verdicts of a trip per city for one category.
func (s *FeedbackService) Preferences(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]planner.CityPreference, error) {
	items, err := s.List(ctx, tripID, category)
	if err != nil {
		return nil, fmt.Errorf("service.FeedbackService.Preferences: %w", err)
	}
	return planner.Summarize(items), nil
}
