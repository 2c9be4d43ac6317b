package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus is the outcome of a swipe on an activity or restaurant.
type FeedbackStatus string

const (
	StatusPending  FeedbackStatus = "pending"
	StatusLiked    FeedbackStatus = "liked"
	StatusDisliked FeedbackStatus = "disliked"
	StatusMaybe    FeedbackStatus = "maybe"
)

// Valid reports whether s is one of the four known statuses.
func (s FeedbackStatus) Valid() bool {
	switch s {
	case StatusPending, StatusLiked, StatusDisliked, StatusMaybe:
		return true
	}
	return false
}

// FeedbackCategory separates activities from restaurants.
// Only activities weight the day allocation.
type FeedbackCategory string

const (
	CategoryActivity   FeedbackCategory = "activity"
	CategoryRestaurant FeedbackCategory = "restaurant"
)

// Valid reports whether c is a known category.
func (c FeedbackCategory) Valid() bool {
	return c == CategoryActivity || c == CategoryRestaurant
}

// ActivityFeedback is a single swipeable suggestion and the user's verdict on it.
// Location is the city label the suggestion belongs to; blank locations
// contribute to no city.
type ActivityFeedback struct {
	ID        uuid.UUID        `json:"id"`
	TripID    uuid.UUID        `json:"trip_id"`
	Category  FeedbackCategory `json:"category"`
	Name      string           `json:"name"`
	Location  string           `json:"location,omitempty"`
	Status    FeedbackStatus   `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
