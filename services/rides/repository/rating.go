package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
)

// ratingRow is the flat scan target for the ratings table.
type ratingRow struct {
	ID               uuid.UUID      `db:"id"`
	RideID           uuid.UUID      `db:"ride_id"`
	PassengerID      uuid.UUID      `db:"passenger_id"`
	DriverID         uuid.UUID      `db:"driver_id"`
	DriverRating     sql.NullInt64  `db:"driver_rating"`
	DriverComment    sql.NullString `db:"driver_comment"`
	PassengerRating  sql.NullInt64  `db:"passenger_rating"`
	PassengerComment sql.NullString `db:"passenger_comment"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

const ratingColumns = `
	id, ride_id, passenger_id, driver_id,
	driver_rating, driver_comment, passenger_rating, passenger_comment,
	created_at, updated_at`

func (row *ratingRow) toModel() *models.Rating {
	rating := &models.Rating{
		ID:          row.ID,
		RideID:      row.RideID,
		PassengerID: row.PassengerID,
		DriverID:    row.DriverID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.DriverRating.Valid {
		v := int(row.DriverRating.Int64)
		rating.DriverRating = &v
	}
	if row.DriverComment.Valid {
		c := row.DriverComment.String
		rating.DriverComment = &c
	}
	if row.PassengerRating.Valid {
		v := int(row.PassengerRating.Int64)
		rating.PassengerRating = &v
	}
	if row.PassengerComment.Valid {
		c := row.PassengerComment.String
		rating.PassengerComment = &c
	}

	return rating
}

// UpsertRating merges one party's rating into the single per-ride record.
// COALESCE keeps whichever columns the other party already wrote: a
// passenger submission never clobbers the driver's and vice versa.
func (r *RideRepo) UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	query := `
		INSERT INTO ratings (
			id, ride_id, passenger_id, driver_id,
			driver_rating, driver_comment, passenger_rating, passenger_comment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (ride_id) DO UPDATE SET
			driver_rating = COALESCE(EXCLUDED.driver_rating, ratings.driver_rating),
			driver_comment = COALESCE(EXCLUDED.driver_comment, ratings.driver_comment),
			passenger_rating = COALESCE(EXCLUDED.passenger_rating, ratings.passenger_rating),
			passenger_comment = COALESCE(EXCLUDED.passenger_comment, ratings.passenger_comment),
			updated_at = EXCLUDED.updated_at
		RETURNING ` + ratingColumns

	var row ratingRow
	err := r.db.GetContext(
		ctx,
		&row,
		query,
		rating.ID,
		rating.RideID,
		rating.PassengerID,
		rating.DriverID,
		rating.DriverRating,
		rating.DriverComment,
		rating.PassengerRating,
		rating.PassengerComment,
		rating.CreatedAt,
		rating.UpdatedAt,
	)
	if err != nil {
		return nil, storeFailure("upsert rating", err)
	}

	return row.toModel(), nil
}

// GetRatingByRideID retrieves the rating record for a ride
func (r *RideRepo) GetRatingByRideID(ctx context.Context, rideID uuid.UUID) (*models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE ride_id = $1`

	var row ratingRow
	err := r.db.GetContext(ctx, &row, query, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: ride %s", errs.ErrRatingNotFound, rideID)
		}
		return nil, storeFailure("get rating", err)
	}

	return row.toModel(), nil
}
