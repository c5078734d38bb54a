package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
)

func TestSubmitRating_PassengerRatesDriver(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusCompleted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpsertRating(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rating *models.Rating) (*models.Rating, error) {
			require.NotNil(t, rating.DriverRating)
			assert.Equal(t, 5, *rating.DriverRating)
			assert.Nil(t, rating.PassengerRating)
			assert.Equal(t, ride.PassengerID, rating.PassengerID)
			assert.Equal(t, driverID, rating.DriverID)
			return rating, nil
		})

	value := 5
	rating, err := uc.SubmitRating(context.Background(), &models.RatingRequest{
		RideID:  ride.ID,
		RaterID: ride.PassengerID,
		Role:    models.RolePassenger,
		Value:   value,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, *rating.DriverRating)
}

func TestSubmitRating_DriverRatesPassenger(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusCompleted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpsertRating(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rating *models.Rating) (*models.Rating, error) {
			require.NotNil(t, rating.PassengerRating)
			assert.Equal(t, 4, *rating.PassengerRating)
			assert.Nil(t, rating.DriverRating)
			return rating, nil
		})

	_, err := uc.SubmitRating(context.Background(), &models.RatingRequest{
		RideID:  ride.ID,
		RaterID: driverID,
		Role:    models.RoleDriver,
		Value:   4,
	})

	require.NoError(t, err)
}

func TestSubmitRating_ValueOutOfRange(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	for _, value := range []int{0, 6, -1} {
		_, err := uc.SubmitRating(context.Background(), &models.RatingRequest{
			RideID:  uuid.New(),
			RaterID: uuid.New(),
			Role:    models.RolePassenger,
			Value:   value,
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
}

func TestSubmitRating_RideNotCompleted(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusStarted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.SubmitRating(context.Background(), &models.RatingRequest{
		RideID:  ride.ID,
		RaterID: ride.PassengerID,
		Role:    models.RolePassenger,
		Value:   5,
	})

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestSubmitRating_StrangerForbidden(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusCompleted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.SubmitRating(context.Background(), &models.RatingRequest{
		RideID:  ride.ID,
		RaterID: uuid.New(),
		Role:    models.RolePassenger,
		Value:   3,
	})

	assert.ErrorIs(t, err, errs.ErrForbidden)
}
