package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/match/mocks"
)

// fakeLifecycle arbitrates claims the way the real lifecycle does: first
// caller wins, everyone else loses.
type fakeLifecycle struct {
	mu     sync.Mutex
	winner *uuid.UUID
	ride   *models.Ride
}

func (f *fakeLifecycle) ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.winner != nil {
		return nil, errs.ErrRideAlreadyClaimed
	}

	winner := driverID
	f.winner = &winner
	ride := *f.ride
	ride.Status = models.RideStatusAccepted
	ride.DriverID = &winner
	return &ride, nil
}

func newMatchTest(t *testing.T, lifecycle *fakeLifecycle) (*MatchUsecase, *mocks.MockMatchRepo, *mocks.MockMatchGW) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockMatchRepo(ctrl)
	mockGW := mocks.NewMockMatchGW(ctrl)

	uc := NewMatchUsecase(&models.Config{}, mockRepo, mockGW, lifecycle)
	return uc, mockRepo, mockGW
}

func TestClaimRide_ExactlyOneWinner(t *testing.T) {
	rideID := uuid.New()
	lifecycle := &fakeLifecycle{ride: &models.Ride{
		ID:          rideID,
		Status:      models.RideStatusRequested,
		PassengerID: uuid.New(),
	}}

	uc, _, _ := newMatchTest(t, lifecycle)

	const drivers = 32

	var wg sync.WaitGroup
	results := make([]error, drivers)
	winners := make([]*models.Ride, drivers)

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ride, err := uc.ClaimRide(context.Background(), rideID, uuid.New())
			results[i] = err
			winners[i] = ride
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := 0; i < drivers; i++ {
		if results[i] == nil {
			wins++
			require.NotNil(t, winners[i])
			assert.Equal(t, models.RideStatusAccepted, winners[i].Status)
			assert.Equal(t, *lifecycle.winner, *winners[i].DriverID)
		} else {
			assert.ErrorIs(t, results[i], errs.ErrRideAlreadyClaimed)
			assert.Nil(t, winners[i])
		}
	}
	assert.Equal(t, 1, wins)
}

func TestClaimRide_PropagatesLifecycleError(t *testing.T) {
	rideID := uuid.New()
	lifecycle := &fakeLifecycle{ride: &models.Ride{ID: rideID, Status: models.RideStatusRequested}}

	uc, _, _ := newMatchTest(t, lifecycle)

	first, err := uc.ClaimRide(context.Background(), rideID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = uc.ClaimRide(context.Background(), rideID, uuid.New())
	assert.ErrorIs(t, err, errs.ErrRideAlreadyClaimed)
}

func TestRejectRide_TelemetryOnly(t *testing.T) {
	rideID := uuid.New()
	driverID := uuid.New()

	// A nil-winner lifecycle that fails the test if touched: rejecting
	// must never reach the ride lifecycle.
	lifecycle := &fakeLifecycle{ride: &models.Ride{ID: rideID}}

	uc, mockRepo, mockGW := newMatchTest(t, lifecycle)

	mockRepo.EXPECT().
		IncrementRejectCount(gomock.Any(), rideID, driverID).
		Return(int64(1), nil)
	mockGW.EXPECT().
		PublishMatchRejected(gomock.Any(), rideID, driverID).
		Return(nil)

	err := uc.RejectRide(context.Background(), rideID, driverID)

	assert.NoError(t, err)
	assert.Nil(t, lifecycle.winner, "reject must not claim the ride")
}

func TestRejectRide_PublishFailureIsSwallowed(t *testing.T) {
	rideID := uuid.New()
	driverID := uuid.New()

	uc, mockRepo, mockGW := newMatchTest(t, &fakeLifecycle{ride: &models.Ride{ID: rideID}})

	mockRepo.EXPECT().
		IncrementRejectCount(gomock.Any(), rideID, driverID).
		Return(int64(2), nil)
	mockGW.EXPECT().
		PublishMatchRejected(gomock.Any(), rideID, driverID).
		Return(assert.AnError)

	err := uc.RejectRide(context.Background(), rideID, driverID)
	assert.NoError(t, err)
}

func TestRejectRide_CounterFailure(t *testing.T) {
	rideID := uuid.New()
	driverID := uuid.New()

	uc, mockRepo, _ := newMatchTest(t, &fakeLifecycle{ride: &models.Ride{ID: rideID}})

	mockRepo.EXPECT().
		IncrementRejectCount(gomock.Any(), rideID, driverID).
		Return(int64(0), errs.ErrStoreUnavailable)

	err := uc.RejectRide(context.Background(), rideID, driverID)
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}

func TestListClaimable_ClampsLimit(t *testing.T) {
	uc, mockRepo, _ := newMatchTest(t, &fakeLifecycle{ride: &models.Ride{}})

	mockRepo.EXPECT().
		ListClaimableRides(gomock.Any(), defaultClaimableLimit).
		Return([]*models.AvailableRide{}, nil).
		Times(2)

	_, err := uc.ListClaimable(context.Background(), 0)
	assert.NoError(t, err)

	_, err = uc.ListClaimable(context.Background(), 500)
	assert.NoError(t, err)
}
