package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// SelectionRepo persists the selected flags produced by selection transitions.
type SelectionRepo interface {
	// Apply writes every change for tripID in one transaction: either all of
	// them land or none do. Returns domain.ErrNotFound if a change names an
	// option outside the trip.
	Apply(ctx context.Context, tripID uuid.UUID, changes []domain.SelectionChange) error
}

type pgSelectionRepo struct {
	db db
}

// NewSelectionRepo constructs a SelectionRepo backed by the provided db connection.
func NewSelectionRepo(db db) SelectionRepo {
	return &pgSelectionRepo{db: db}
}

// Apply clears flags before setting them so the partial unique indexes on
// selected options never see two selected rows at once.
func (r *pgSelectionRepo) Apply(ctx context.Context, tripID uuid.UUID, changes []domain.SelectionChange) error {
	if len(changes) == 0 {
		return nil
	}

	ordered := make([]domain.SelectionChange, 0, len(changes))
	for _, c := range changes {
		if !c.Selected {
			ordered = append(ordered, c)
		}
	}
	for _, c := range changes {
		if c.Selected {
			ordered = append(ordered, c)
		}
	}

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, c := range ordered {
			q, err := selectionUpdate(c.Target)
			if err != nil {
				return err
			}
			tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": c.OptionID, "trip_id": tripID, "selected": c.Selected})
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s option %s", domain.ErrNotFound, c.Target, c.OptionID)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.SelectionRepo.Apply: %w", err)
	}
	return nil
}

func selectionUpdate(target domain.SelectionTarget) (string, error) {
	switch target {
	case domain.TargetFlight:
		return `UPDATE flight_options SET selected = @selected WHERE id = @id AND trip_id = @trip_id`, nil
	case domain.TargetHotel:
		return `UPDATE hotel_options SET selected = @selected WHERE id = @id AND trip_id = @trip_id`, nil
	}
	return "", fmt.Errorf("unknown selection target %q", target)
}
