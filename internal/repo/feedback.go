package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// FeedbackRepo defines the persistence operations for activity and restaurant
// swipe feedback. All reads and writes are scoped by trip.
type FeedbackRepo interface {
	// CreateBatch inserts items for tripID with their given status.
	CreateBatch(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error)

	// GetByID retrieves one item scoped to tripID.
	// Returns domain.ErrNotFound if the item does not belong to the trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ActivityFeedback, error)

	// ListByTrip returns items of a trip in creation order. An empty category
	// returns every category.
	ListByTrip(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error)

	// UpdateStatus sets the status of one item and returns the updated record.
	// Returns domain.ErrNotFound if the item does not belong to the trip.
	UpdateStatus(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error)
}

type pgFeedbackRepo struct {
	db db
}

// NewFeedbackRepo constructs a FeedbackRepo backed by the provided db connection.
func NewFeedbackRepo(db db) FeedbackRepo {
	return &pgFeedbackRepo{db: db}
}

const feedbackColumns = `id, trip_id, category, name, location, status, created_at, updated_at`

func (r *pgFeedbackRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, items []domain.ActivityFeedback) ([]domain.ActivityFeedback, error) {
	const q = `
		INSERT INTO activity_feedback (trip_id, category, name, location, status)
		VALUES (@trip_id, @category, @name, @location, @status)
		RETURNING ` + feedbackColumns

	out := make([]domain.ActivityFeedback, 0, len(items))
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, f := range items {
			row := tx.QueryRow(ctx, q, pgx.NamedArgs{
				"trip_id":  tripID,
				"category": string(f.Category),
				"name":     f.Name,
				"location": f.Location,
				"status":   string(f.Status),
			})
			created, err := scanFeedback(row)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.FeedbackRepo.CreateBatch: %w", err)
	}
	return out, nil
}

func (r *pgFeedbackRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ActivityFeedback, error) {
	const q = `SELECT ` + feedbackColumns + ` FROM activity_feedback WHERE id = @id AND trip_id = @trip_id`

	f, err := scanFeedback(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.ActivityFeedback{}, fmt.Errorf("repo.FeedbackRepo.GetByID: %w", err)
	}
	return f, nil
}

func (r *pgFeedbackRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, category domain.FeedbackCategory) ([]domain.ActivityFeedback, error) {
	const q = `
		SELECT ` + feedbackColumns + `
		FROM activity_feedback
		WHERE trip_id = @trip_id
		  AND (@category = '' OR category = @category)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "category": string(category)})
	if err != nil {
		return nil, fmt.Errorf("repo.FeedbackRepo.ListByTrip: %w", err)
	}
	items, err := collect(rows, scanFeedback)
	if err != nil {
		return nil, fmt.Errorf("repo.FeedbackRepo.ListByTrip: %w", err)
	}
	return items, nil
}

func (r *pgFeedbackRepo) UpdateStatus(ctx context.Context, tripID, id uuid.UUID, status domain.FeedbackStatus) (domain.ActivityFeedback, error) {
	const q = `
		UPDATE activity_feedback
		SET status = @status, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + feedbackColumns

	f, err := scanFeedback(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID, "status": string(status)}))
	if err != nil {
		return domain.ActivityFeedback{}, fmt.Errorf("repo.FeedbackRepo.UpdateStatus: %w", err)
	}
	return f, nil
}

func scanFeedback(s scanner) (domain.ActivityFeedback, error) {
	var (
		f        domain.ActivityFeedback
		id       pgtype.UUID
		tripID   pgtype.UUID
		category string
		status   string
	)
	err := s.Scan(&id, &tripID, &category, &f.Name, &f.Location, &status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return domain.ActivityFeedback{}, notFound(err)
	}
	f.ID = uuid.UUID(id.Bytes)
	f.TripID = uuid.UUID(tripID.Bytes)
	f.Category = domain.FeedbackCategory(category)
	f.Status = domain.FeedbackStatus(status)
	return f, nil
}
