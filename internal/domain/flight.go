package domain

import (
	"time"

	"github.com/google/uuid"
)

// FlightKind distinguishes the two legs of a round trip.
type FlightKind string

const (
	FlightOutbound FlightKind = "outbound"
	FlightReturn   FlightKind = "return"
)

// Valid reports whether k is a known flight kind.
func (k FlightKind) Valid() bool {
	return k == FlightOutbound || k == FlightReturn
}

// FlightOption is one flight search result stored against a trip.
// ContinuationToken is opaque: it is carried on outbound results so the matching
// return legs can be requested, and is never parsed here.
// Selected is the only field mutated after the row is created.
type FlightOption struct {
	ID                uuid.UUID  `json:"id"`
	TripID            uuid.UUID  `json:"trip_id"`
	Kind              FlightKind `json:"kind"`
	Airline           string     `json:"airline,omitempty"`
	FlightNumber      string     `json:"flight_number,omitempty"`
	Price             float64    `json:"price"`
	Currency          string     `json:"currency,omitempty"`
	DepartAt          *time.Time `json:"depart_at,omitempty"`
	ArriveAt          *time.Time `json:"arrive_at,omitempty"`
	ContinuationToken string     `json:"continuation_token,omitempty"`
	Selected          bool       `json:"selected"`
	CreatedAt         time.Time  `json:"created_at"`
}
