package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/rides/mocks"
)

var testPricing = models.PricingConfig{
	Currency:      "KES",
	BaseFare:      50.0,
	PerKmRate:     12.0,
	PerMinuteRate: 1.5,
	AverageKmh:    24.0,
}

func newTestUsecase(t *testing.T) (*RideUsecase, *mocks.MockRideRepo, *mocks.MockRideGW) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockRideRepo(ctrl)
	mockGW := mocks.NewMockRideGW(ctrl)

	cfg := &models.Config{Pricing: testPricing}
	uc := NewRideUsecase(cfg, mockRepo, mockGW)
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	return uc, mockRepo, mockGW
}

func testRide(status models.RideStatus, driverID *uuid.UUID) *models.Ride {
	return &models.Ride{
		ID:          uuid.New(),
		Status:      status,
		PassengerID: uuid.New(),
		DriverID:    driverID,
		Pickup:      models.Location{Latitude: -1.2921, Longitude: 36.8219, Address: "Nairobi CBD"},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260, Address: "JKIA"},
		RideType:    models.RideTypeStandard,
		Fare:        450.0,
		DistanceKm:  13.0,
		DurationMin: 33,
		RequestedAt: time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC),
	}
}

func TestEstimateFare_Standard(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	estimate, err := uc.EstimateFare(context.Background(), &models.RideRequest{
		Pickup:      models.Location{Latitude: -1.2921, Longitude: 36.8219},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260},
		RideType:    models.RideTypeStandard,
	})

	require.NoError(t, err)
	assert.Greater(t, estimate.DistanceKm, 0.0)
	assert.GreaterOrEqual(t, estimate.DurationMin, 1)
	assert.Greater(t, estimate.Fare, testPricing.BaseFare)
	assert.Equal(t, 1.0, estimate.Breakdown["type_multiplier"])
}

func TestEstimateFare_PremiumCostsMore(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	req := &models.RideRequest{
		Pickup:      models.Location{Latitude: -1.2921, Longitude: 36.8219},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260},
	}

	req.RideType = models.RideTypeStandard
	standard, err := uc.EstimateFare(context.Background(), req)
	require.NoError(t, err)

	req.RideType = models.RideTypePremium
	premium, err := uc.EstimateFare(context.Background(), req)
	require.NoError(t, err)

	assert.Greater(t, premium.Fare, standard.Fare)
	assert.Equal(t, standard.DistanceKm, premium.DistanceKm)
}

func TestEstimateFare_InvalidCoordinates(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.EstimateFare(context.Background(), &models.RideRequest{
		Pickup:      models.Location{Latitude: 95.0, Longitude: 36.8219},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260},
	})

	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestRequestRide_Success(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	passengerID := uuid.New()

	mockRepo.EXPECT().
		ActiveRideForPassenger(gomock.Any(), passengerID).
		Return(nil, nil)

	mockRepo.EXPECT().
		CreateRide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ride *models.Ride) error {
			assert.Equal(t, models.RideStatusRequested, ride.Status)
			assert.Equal(t, passengerID, ride.PassengerID)
			assert.Nil(t, ride.DriverID)
			assert.Greater(t, ride.Fare, 0.0)
			return nil
		})

	ride, err := uc.RequestRide(context.Background(), passengerID, &models.RideRequest{
		Pickup:      models.Location{Latitude: -1.2921, Longitude: 36.8219},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260},
	})

	require.NoError(t, err)
	assert.Equal(t, models.RideTypeStandard, ride.RideType)
}

func TestRequestRide_AlreadyActive(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	passengerID := uuid.New()
	active := testRide(models.RideStatusAccepted, nil)

	mockRepo.EXPECT().
		ActiveRideForPassenger(gomock.Any(), passengerID).
		Return(active, nil)

	_, err := uc.RequestRide(context.Background(), passengerID, &models.RideRequest{
		Pickup:      models.Location{Latitude: -1.2921, Longitude: 36.8219},
		Destination: models.Location{Latitude: -1.3192, Longitude: 36.9260},
	})

	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestClaimRide_Success(t *testing.T) {
	uc, mockRepo, mockGW := newTestUsecase(t)

	driverID := uuid.New()
	claimed := testRide(models.RideStatusAccepted, &driverID)

	mockRepo.EXPECT().
		ActiveRideForDriver(gomock.Any(), driverID).
		Return(nil, nil)
	mockRepo.EXPECT().
		ClaimRide(gomock.Any(), claimed.ID, driverID, gomock.Any()).
		Return(nil)
	mockRepo.EXPECT().
		GetRide(gomock.Any(), claimed.ID).
		Return(claimed, nil)
	mockGW.EXPECT().
		PublishRideAccepted(gomock.Any(), claimed).
		Return(nil)

	ride, err := uc.ClaimRide(context.Background(), claimed.ID, driverID)

	require.NoError(t, err)
	assert.Equal(t, models.RideStatusAccepted, ride.Status)
	assert.Equal(t, driverID, *ride.DriverID)
}

func TestClaimRide_LostRace(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	rideID := uuid.New()
	driverID := uuid.New()

	mockRepo.EXPECT().
		ActiveRideForDriver(gomock.Any(), driverID).
		Return(nil, nil)
	mockRepo.EXPECT().
		ClaimRide(gomock.Any(), rideID, driverID, gomock.Any()).
		Return(errs.ErrRideAlreadyClaimed)

	_, err := uc.ClaimRide(context.Background(), rideID, driverID)

	assert.ErrorIs(t, err, errs.ErrRideAlreadyClaimed)
}

func TestClaimRide_DriverBusy(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	active := testRide(models.RideStatusStarted, &driverID)

	mockRepo.EXPECT().
		ActiveRideForDriver(gomock.Any(), driverID).
		Return(active, nil)

	_, err := uc.ClaimRide(context.Background(), uuid.New(), driverID)

	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestMarkArrived_Success(t *testing.T) {
	uc, mockRepo, mockGW := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusAccepted, &driverID)
	arrived := *ride
	arrived.Status = models.RideStatusArrived

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), ride.ID, models.RideStatusAccepted, models.RideStatusArrived, gomock.Any(), nil).
		Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(&arrived, nil)
	mockGW.EXPECT().PublishRideArrived(gomock.Any(), &arrived).Return(nil)

	updated, err := uc.MarkArrived(context.Background(), ride.ID, driverID)

	require.NoError(t, err)
	assert.Equal(t, models.RideStatusArrived, updated.Status)
}

func TestMarkArrived_WrongDriver(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	assignedDriver := uuid.New()
	ride := testRide(models.RideStatusAccepted, &assignedDriver)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.MarkArrived(context.Background(), ride.ID, uuid.New())

	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestStartTrip_SkippingArrivedIsInvalid(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusAccepted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.StartTrip(context.Background(), ride.ID, driverID)

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCompleteRide_FromStarted(t *testing.T) {
	uc, mockRepo, mockGW := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusStarted, &driverID)
	completed := *ride
	completed.Status = models.RideStatusCompleted

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), ride.ID, models.RideStatusStarted, models.RideStatusCompleted, gomock.Any(), nil).
		Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(&completed, nil)
	mockGW.EXPECT().PublishRideCompleted(gomock.Any(), &completed).Return(nil)

	updated, err := uc.CompleteRide(context.Background(), ride.ID, driverID)

	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, updated.Status)
}

func TestTransitions_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []models.RideStatus{models.RideStatusCompleted, models.RideStatusCancelled} {
		t.Run(string(terminal), func(t *testing.T) {
			uc, mockRepo, _ := newTestUsecase(t)

			driverID := uuid.New()
			ride := testRide(terminal, &driverID)

			mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil).AnyTimes()

			_, err := uc.MarkArrived(context.Background(), ride.ID, driverID)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)

			_, err = uc.StartTrip(context.Background(), ride.ID, driverID)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)

			_, err = uc.CompleteRide(context.Background(), ride.ID, driverID)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)

			_, err = uc.CancelRide(context.Background(), ride.ID, ride.PassengerID, models.RolePassenger, nil)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func TestCancelRide_PassengerBeforeStart(t *testing.T) {
	uc, mockRepo, mockGW := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusAccepted, &driverID)
	cancelled := *ride
	cancelled.Status = models.RideStatusCancelled

	reason := "change of plans"

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), ride.ID, models.RideStatusAccepted, models.RideStatusCancelled, gomock.Any(), &reason).
		Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(&cancelled, nil)
	mockGW.EXPECT().PublishRideCancelled(gomock.Any(), &cancelled).Return(nil)

	updated, err := uc.CancelRide(context.Background(), ride.ID, ride.PassengerID, models.RolePassenger, &reason)

	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCancelled, updated.Status)
}

func TestCancelRide_StartedCannotCancel(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusStarted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.CancelRide(context.Background(), ride.ID, ride.PassengerID, models.RolePassenger, nil)

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCancelRide_StrangerForbidden(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusAccepted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.CancelRide(context.Background(), ride.ID, uuid.New(), models.RolePassenger, nil)

	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCancelRide_DriverCannotCancel(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusAccepted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)

	_, err := uc.CancelRide(context.Background(), ride.ID, driverID, models.RoleDriver, nil)

	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCancelRide_StartedRideIsInvalidForAnyActor(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusStarted, &driverID)

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil).Times(2)

	// Lifecycle legality wins over actor authority: the assigned driver
	// gets the transition error, not a forbidden.
	_, err := uc.CancelRide(context.Background(), ride.ID, driverID, models.RoleDriver, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = uc.CancelRide(context.Background(), ride.ID, uuid.New(), models.RolePassenger, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestNotify_PublishFailureDoesNotFailTransition(t *testing.T) {
	uc, mockRepo, mockGW := newTestUsecase(t)

	driverID := uuid.New()
	ride := testRide(models.RideStatusStarted, &driverID)
	completed := *ride
	completed.Status = models.RideStatusCompleted

	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(ride, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), ride.ID, models.RideStatusStarted, models.RideStatusCompleted, gomock.Any(), nil).
		Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), ride.ID).Return(&completed, nil)
	mockGW.EXPECT().PublishRideCompleted(gomock.Any(), &completed).Return(assert.AnError)

	updated, err := uc.CompleteRide(context.Background(), ride.ID, driverID)

	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, updated.Status)
}

func TestActiveRide_NoneIsNotFound(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	userID := uuid.New()
	mockRepo.EXPECT().ActiveRideForPassenger(gomock.Any(), userID).Return(nil, nil)

	_, err := uc.ActiveRide(context.Background(), userID, models.RolePassenger)

	assert.ErrorIs(t, err, errs.ErrRideNotFound)
}

func TestRideHistory_ClampsPaging(t *testing.T) {
	uc, mockRepo, _ := newTestUsecase(t)

	userID := uuid.New()
	mockRepo.EXPECT().
		RideHistory(gomock.Any(), userID, models.RoleDriver, 1, 20).
		Return(&models.RideHistory{Page: 1, Limit: 20}, nil)

	history, err := uc.RideHistory(context.Background(), userID, models.RoleDriver, -3, 5000)

	require.NoError(t, err)
	assert.Equal(t, 1, history.Page)
	assert.Equal(t, 20, history.Limit)
}
