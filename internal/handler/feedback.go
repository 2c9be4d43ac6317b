package handler

import (
	"net/http"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/planner"
)

// FeedbackRequest is one element of the POST /trips/{tripID}/feedback body.
// Category defaults to "activity".
type FeedbackRequest struct {
	Category domain.FeedbackCategory `json:"category,omitempty"`
	Name     string                  `json:"name"`
	Location string                  `json:"location,omitempty"`
}

// SwipeRequest is the body of PUT /trips/{tripID}/feedback/{feedbackID}.
type SwipeRequest struct {
	Status domain.FeedbackStatus `json:"status"`
}

// AddFeedback handles POST /trips/{tripID}/feedback.
func (s *Server) AddFeedback(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var body []FeedbackRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	items := make([]domain.ActivityFeedback, len(body))
	for i, f := range body {
		items[i] = domain.ActivityFeedback{Category: f.Category, Name: f.Name, Location: f.Location}
	}
	created, err := s.feedback.Add(r.Context(), tripID, items)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listResponse[domain.ActivityFeedback]{Data: created})
}

// ListFeedback handles GET /trips/{tripID}/feedback[?category=].
func (s *Server) ListFeedback(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	category := domain.FeedbackCategory(r.URL.Query().Get("category"))
	items, err := s.feedback.List(r.Context(), tripID, category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.ActivityFeedback]{Data: items})
}

// SwipeFeedback handles PUT /trips/{tripID}/feedback/{feedbackID}.
func (s *Server) SwipeFeedback(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	feedbackID, ok := pathUUID(w, r, "feedbackID")
	if !ok {
		return
	}
	var body SwipeRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.feedback.Swipe(r.Context(), tripID, feedbackID, body.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetPreferences handles GET /trips/{tripID}/preferences[?category=].
// Category defaults to "activity".
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	category := domain.FeedbackCategory(r.URL.Query().Get("category"))
	if category == "" {
		category = domain.CategoryActivity
	}
	prefs, err := s.feedback.Preferences(r.Context(), tripID, category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[planner.CityPreference]{Data: prefs})
}
