package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// HotelRepo defines the persistence operations for hotel search results.
type HotelRepo interface {
	// CreateBatch inserts hotels for tripID in one transaction and returns the
	// persisted records in input order.
	CreateBatch(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error)

	// GetByID retrieves a hotel scoped to tripID.
	// Returns domain.ErrNotFound if the hotel does not belong to the trip.
	GetByID(ctx context.Context, tripID, hotelID uuid.UUID) (domain.HotelOption, error)

	// ListByTrip returns all hotels of a trip ordered by city, then price.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error)
}

type pgHotelRepo struct {
	db db
}

// NewHotelRepo constructs a HotelRepo backed by the provided db connection.
func NewHotelRepo(db db) HotelRepo {
	return &pgHotelRepo{db: db}
}

const hotelColumns = `id, trip_id, city_label, name, price, currency, detail_link, selected, created_at`

func (r *pgHotelRepo) CreateBatch(ctx context.Context, tripID uuid.UUID, hotels []domain.HotelOption) ([]domain.HotelOption, error) {
	const q = `
		INSERT INTO hotel_options (trip_id, city_label, name, price, currency, detail_link)
		VALUES (@trip_id, @city_label, @name, @price, @currency, @detail_link)
		RETURNING ` + hotelColumns

	out := make([]domain.HotelOption, 0, len(hotels))
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, h := range hotels {
			row := tx.QueryRow(ctx, q, pgx.NamedArgs{
				"trip_id":     tripID,
				"city_label":  h.CityLabel,
				"name":        h.Name,
				"price":       h.Price,
				"currency":    h.Currency,
				"detail_link": h.DetailLink,
			})
			created, err := scanHotel(row)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.HotelRepo.CreateBatch: %w", err)
	}
	return out, nil
}

func (r *pgHotelRepo) GetByID(ctx context.Context, tripID, hotelID uuid.UUID) (domain.HotelOption, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotel_options WHERE id = @id AND trip_id = @trip_id`

	h, err := scanHotel(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": hotelID, "trip_id": tripID}))
	if err != nil {
		return domain.HotelOption{}, fmt.Errorf("repo.HotelRepo.GetByID: %w", err)
	}
	return h, nil
}

func (r *pgHotelRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.HotelOption, error) {
	const q = `
		SELECT ` + hotelColumns + `
		FROM hotel_options
		WHERE trip_id = @trip_id
		ORDER BY lower(btrim(city_label)), price, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.HotelRepo.ListByTrip: %w", err)
	}
	hotels, err := collect(rows, scanHotel)
	if err != nil {
		return nil, fmt.Errorf("repo.HotelRepo.ListByTrip: %w", err)
	}
	return hotels, nil
}

func scanHotel(s scanner) (domain.HotelOption, error) {
	var (
		h      domain.HotelOption
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &h.CityLabel, &h.Name, &h.Price, &h.Currency, &h.DetailLink, &h.Selected, &h.CreatedAt)
	if err != nil {
		return domain.HotelOption{}, notFound(err)
	}
	h.ID = uuid.UUID(id.Bytes)
	h.TripID = uuid.UUID(tripID.Bytes)
	return h, nil
}
