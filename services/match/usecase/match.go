package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/services/match"
)

const defaultClaimableLimit = 50

// MatchUsecase implements the driver-side matching logic.
type MatchUsecase struct {
	cfg       *models.Config
	repo      match.MatchRepo
	gw        match.MatchGW
	lifecycle match.RideLifecycle
}

// NewMatchUsecase creates a new match usecase
func NewMatchUsecase(cfg *models.Config, repo match.MatchRepo, gw match.MatchGW, lifecycle match.RideLifecycle) *MatchUsecase {
	return &MatchUsecase{
		cfg:       cfg,
		repo:      repo,
		gw:        gw,
		lifecycle: lifecycle,
	}
}

// ListClaimable returns the open ride pool shown to drivers
func (uc *MatchUsecase) ListClaimable(ctx context.Context, limit int) ([]*models.AvailableRide, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "match.ListClaimable", func() ([]*models.AvailableRide, error) {
		if limit < 1 || limit > defaultClaimableLimit {
			limit = defaultClaimableLimit
		}
		return uc.repo.ListClaimableRides(ctx, limit)
	})
}

// ClaimRide delegates the claim to the ride lifecycle, which arbitrates
// concurrent claims so that exactly one driver wins.
func (uc *MatchUsecase) ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "match.ClaimRide", func() (*models.Ride, error) {
		ride, err := uc.lifecycle.ClaimRide(ctx, rideID, driverID)
		if err != nil {
			logger.InfoCtx(ctx, "Claim attempt failed",
				logger.String("ride_id", rideID.String()),
				logger.String("driver_id", driverID.String()),
				logger.Err(err))
			return nil, err
		}
		return ride, nil
	})
}

// RejectRide records that the driver passed on the ride. The ride itself
// is untouched: no state change, no driver assignment, it simply remains
// claimable by everyone else.
func (uc *MatchUsecase) RejectRide(ctx context.Context, rideID, driverID uuid.UUID) error {
	return nrpkg.WithSegment(ctx, "match.RejectRide", func() error {
		count, err := uc.repo.IncrementRejectCount(ctx, rideID, driverID)
		if err != nil {
			return err
		}

		logger.InfoCtx(ctx, "Ride rejected by driver",
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", driverID.String()),
			logger.Int64("reject_count", count))

		if err := uc.gw.PublishMatchRejected(ctx, rideID, driverID); err != nil {
			logger.WarnCtx(ctx, "Failed to publish match rejected event",
				logger.String("ride_id", rideID.String()),
				logger.Err(err))
		}

		return nil
	})
}
