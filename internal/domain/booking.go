package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingOptions is the detail payload for one (hotel, detail link) pair.
// Cached is true when the value was served without a network fetch.
type BookingOptions struct {
	HotelID    uuid.UUID       `json:"hotel_id"`
	DetailLink string          `json:"detail_link"`
	Payload    json.RawMessage `json:"payload"`
	FetchedAt  time.Time       `json:"fetched_at"`
	Cached     bool            `json:"cached"`
}
