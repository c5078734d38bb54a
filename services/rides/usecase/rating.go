package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
)

// SubmitRating records one party's rating for a completed ride. Both
// parties' submissions merge into the single per-ride record; resubmitting
// overwrites only the caller's own columns.
func (uc *RideUsecase) SubmitRating(ctx context.Context, req *models.RatingRequest) (*models.Rating, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.SubmitRating", func() (*models.Rating, error) {
		if req.Value < 1 || req.Value > 5 {
			return nil, fmt.Errorf("%w: rating value %d must be between 1 and 5", errs.ErrValidation, req.Value)
		}

		ride, err := uc.repo.GetRide(ctx, req.RideID)
		if err != nil {
			return nil, err
		}

		if ride.Status != models.RideStatusCompleted {
			return nil, fmt.Errorf("%w: ride %s is %s, only completed rides can be rated", errs.ErrInvalidTransition, ride.ID, ride.Status)
		}

		rating := &models.Rating{
			ID:          uuid.New(),
			RideID:      ride.ID,
			PassengerID: ride.PassengerID,
			DriverID:    *ride.DriverID,
			CreatedAt:   uc.now(),
			UpdatedAt:   uc.now(),
		}

		switch req.Role {
		case models.RolePassenger:
			if ride.PassengerID != req.RaterID {
				return nil, fmt.Errorf("%w: passenger %s was not part of ride %s", errs.ErrForbidden, req.RaterID, ride.ID)
			}
			rating.DriverRating = &req.Value
			rating.DriverComment = req.Comment
		case models.RoleDriver:
			if *ride.DriverID != req.RaterID {
				return nil, fmt.Errorf("%w: driver %s was not part of ride %s", errs.ErrForbidden, req.RaterID, ride.ID)
			}
			rating.PassengerRating = &req.Value
			rating.PassengerComment = req.Comment
		default:
			return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, req.Role)
		}

		merged, err := uc.repo.UpsertRating(ctx, rating)
		if err != nil {
			return nil, err
		}

		logger.InfoCtx(ctx, "Rating submitted",
			logger.String("ride_id", ride.ID.String()),
			logger.String("role", string(req.Role)),
			logger.Int("value", req.Value))

		return merged, nil
	})
}

// GetRating retrieves the rating record for a ride
func (uc *RideUsecase) GetRating(ctx context.Context, rideID uuid.UUID) (*models.Rating, error) {
	return uc.repo.GetRatingByRideID(ctx, rideID)
}
