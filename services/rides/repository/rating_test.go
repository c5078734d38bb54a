package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
)

var ratingTestColumns = []string{
	"id", "ride_id", "passenger_id", "driver_id",
	"driver_rating", "driver_comment", "passenger_rating", "passenger_comment",
	"created_at", "updated_at",
}

func TestUpsertRating_MergesBothParties(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ratingID := uuid.New()
	rideID := uuid.New()
	passengerID := uuid.New()
	driverID := uuid.New()

	five := 5
	rating := &models.Rating{
		ID:           ratingID,
		RideID:       rideID,
		PassengerID:  passengerID,
		DriverID:     driverID,
		DriverRating: &five,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The driver rated earlier; the returned row carries both scores.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ratings")).
		WithArgs(ratingID, rideID, passengerID, driverID, &five, nil, nil, nil, now, now).
		WillReturnRows(sqlmock.NewRows(ratingTestColumns).AddRow(
			ratingID, rideID, passengerID, driverID,
			5, nil, 4, "great passenger",
			now, now,
		))

	merged, err := repo.UpsertRating(context.Background(), rating)
	require.NoError(t, err)
	assert.Equal(t, 5, *merged.DriverRating)
	assert.Equal(t, 4, *merged.PassengerRating)
	assert.Equal(t, "great passenger", *merged.PassengerComment)
}

func TestGetRatingByRideID_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	rideID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM ratings WHERE ride_id = $1")).
		WithArgs(rideID).
		WillReturnRows(sqlmock.NewRows(ratingTestColumns))

	_, err := repo.GetRatingByRideID(context.Background(), rideID)
	assert.ErrorIs(t, err, errs.ErrRatingNotFound)
}
