package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips ordered by start_date descending,
	// plus the total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, by cascade, its options, feedback and cached
	// booking payloads. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, city_order, start_date, end_date, total_days, notes, created_at, updated_at`

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	cities := trip.CityOrder
	if cities == nil {
		cities = []string{}
	}
	return pgx.NamedArgs{
		"id":         trip.ID,
		"name":       trip.Name,
		"city_order": cities,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate, // nil becomes NULL
		"total_days": trip.TotalDays,
		"notes":      trip.Notes,
	}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, city_order, start_date, end_date, total_days, notes)
		VALUES (@name, @city_order, @start_date, @end_date, @total_days, @notes)
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start_date descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total trip count.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips`
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name       = @name,
		    city_order = @city_order,
		    start_date = @start_date,
		    end_date   = @end_date,
		    total_days = @total_days,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable end_date and nullable total_days conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		totalDays pgtype.Int4
	)

	err := s.Scan(&id, &t.Name, &t.CityOrder, &startDate, &endDate, &totalDays, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, notFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	if endDate.Valid {
		ed := endDate.Time
		t.EndDate = &ed
	}
	if totalDays.Valid {
		n := int(totalDays.Int32)
		t.TotalDays = &n
	}
	if t.CityOrder == nil {
		t.CityOrder = []string{}
	}
	return t, nil
}
