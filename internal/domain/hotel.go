package domain

import (
	"time"

	"github.com/google/uuid"
)

// HotelOption is one hotel search result for a single city of a trip.
// DetailLink is the third-party link used to look up booking options.
type HotelOption struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"trip_id"`
	CityLabel  string    `json:"city_label"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency,omitempty"`
	DetailLink string    `json:"detail_link,omitempty"`
	Selected   bool      `json:"selected"`
	CreatedAt  time.Time `json:"created_at"`
}
