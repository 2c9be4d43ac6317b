package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// BookingRepo persists fetched booking-option payloads so a new process can
// seed its in-memory cache once per trip instead of refetching.
type BookingRepo interface {
	// Upsert stores the payload for (HotelID, DetailLink), replacing any
	// previous one.
	Upsert(ctx context.Context, entry domain.BookingOptions) error

	// ListByTrip returns every stored payload for the hotels of tripID.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BookingOptions, error)
}

type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

func (r *pgBookingRepo) Upsert(ctx context.Context, entry domain.BookingOptions) error {
	const q = `
		INSERT INTO booking_options (hotel_id, detail_link, payload, fetched_at)
		VALUES (@hotel_id, @detail_link, @payload, @fetched_at)
		ON CONFLICT (hotel_id, detail_link)
		DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"hotel_id":    entry.HotelID,
		"detail_link": entry.DetailLink,
		"payload":     []byte(entry.Payload),
		"fetched_at":  entry.FetchedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Upsert: %w", err)
	}
	return nil
}

func (r *pgBookingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BookingOptions, error) {
	const q = `
		SELECT b.hotel_id, b.detail_link, b.payload, b.fetched_at
		FROM booking_options b
		JOIN hotel_options h ON h.id = b.hotel_id
		WHERE h.trip_id = @trip_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByTrip: %w", err)
	}
	entries, err := collect(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByTrip: %w", err)
	}
	return entries, nil
}

func scanBooking(s scanner) (domain.BookingOptions, error) {
	var (
		b       domain.BookingOptions
		hotelID pgtype.UUID
		payload []byte
	)
	if err := s.Scan(&hotelID, &b.DetailLink, &payload, &b.FetchedAt); err != nil {
		return domain.BookingOptions{}, notFound(err)
	}
	b.HotelID = uuid.UUID(hotelID.Bytes)
	b.Payload = json.RawMessage(payload)
	return b, nil
}
