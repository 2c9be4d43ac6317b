package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// FlightRepo defines the persistence operations for flight search results.
// Rows are created when results are fetched and removed only with their trip.
// DepartAt and ArriveAt are stored as airport-local wall-clock times without
// a zone and read back in UTC with the same clock reading.
type FlightRepo interface {
	// CreateBatch inserts flights for tripID in one transaction and returns the
	// persisted records in input order.
	CreateBatch(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error)

	// ListByTrip returns all flights of a trip, outbound first, then by price.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error)
}

type pgFlightRepo struct {
	db db
}

// NewFlightRepo constructs a FlightRepo backed by the provided db connection.
func NewFlightRepo(db db) FlightRepo {
	return &pgFlightRepo{db: db}
}

const flightColumns = `id, trip_id, kind, airline, flight_number, price, currency,
	depart_at, arrive_at, continuation_token, selected, created_at`

func (r *pgFlightRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, flights []domain.FlightOption) ([]domain.FlightOption, error) {
	const q = `
		INSERT INTO flight_options
			(trip_id, kind, airline, flight_number, price, currency, depart_at, arrive_at, continuation_token)
		VALUES
			(@trip_id, @kind, @airline, @flight_number, @price, @currency, @depart_at, @arrive_at, @continuation_token)
		RETURNING ` + flightColumns

	out := make([]domain.FlightOption, 0, len(flights))
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, f := range flights {
			row := tx.QueryRow(ctx, q, pgx.NamedArgs{
				"trip_id":            tripID,
				"kind":               string(f.Kind),
				"airline":            f.Airline,
				"flight_number":      f.FlightNumber,
				"price":              f.Price,
				"currency":           f.Currency,
				"depart_at":          f.DepartAt,
				"arrive_at":          f.ArriveAt,
				"continuation_token": f.ContinuationToken,
			})
			created, err := scanFlight(row)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.CreateBatch: %w", err)
	}
	return out, nil
}

func (r *pgFlightRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.FlightOption, error) {
	const q = `
		SELECT ` + flightColumns + `
		FROM flight_options
		WHERE trip_id = @trip_id
		ORDER BY kind = 'return', price, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.ListByTrip: %w", err)
	}
	flights, err := collect(rows, scanFlight)
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.ListByTrip: %w", err)
	}
	return flights, nil
}

func scanFlight(s scanner) (domain.FlightOption, error) {
	var (
		f        domain.FlightOption
		id       pgtype.UUID
		tripID   pgtype.UUID
		kind     string
		departAt pgtype.Timestamp
		arriveAt pgtype.Timestamp
	)
	err := s.Scan(&id, &tripID, &kind, &f.Airline, &f.FlightNumber, &f.Price, &f.Currency,
		&departAt, &arriveAt, &f.ContinuationToken, &f.Selected, &f.CreatedAt)
	if err != nil {
		return domain.FlightOption{}, notFound(err)
	}
	f.ID = uuid.UUID(id.Bytes)
	f.TripID = uuid.UUID(tripID.Bytes)
	f.Kind = domain.FlightKind(kind)
	if departAt.Valid {
		t := departAt.Time
		f.DepartAt = &t
	}
	if arriveAt.Valid {
		t := arriveAt.Time
		f.ArriveAt = &t
	}
	return f, nil
}
