package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/internal/utils"
	"github.com/twende-app/twende/services/rides"
)

// rideTypeMultipliers scales the base estimate per service class.
var rideTypeMultipliers = map[models.RideType]float64{
	models.RideTypeStandard: 1.0,
	models.RideTypeComfort:  1.5,
	models.RideTypePremium:  2.0,
}

// RideUsecase implements the ride lifecycle business logic.
type RideUsecase struct {
	cfg  *models.Config
	repo rides.RideRepo
	gw   rides.RideGW
	now  func() time.Time
}

// NewRideUsecase creates a new ride usecase
func NewRideUsecase(cfg *models.Config, repo rides.RideRepo, gw rides.RideGW) *RideUsecase {
	return &RideUsecase{
		cfg:  cfg,
		repo: repo,
		gw:   gw,
		now:  time.Now,
	}
}

// EstimateFare computes the frozen pricing snapshot for a prospective ride.
func (uc *RideUsecase) EstimateFare(ctx context.Context, req *models.RideRequest) (*models.FareEstimate, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.EstimateFare", func() (*models.FareEstimate, error) {
		if err := validateRideRequest(req); err != nil {
			return nil, err
		}

		pricing := uc.cfg.Pricing

		distanceKm := utils.CalculateDistanceKm(req.Pickup, req.Destination)
		durationMin := int(math.Ceil(distanceKm / pricing.AverageKmh * 60))
		if durationMin < 1 {
			durationMin = 1
		}

		multiplier := rideTypeMultipliers[req.RideType]
		distanceFare := pricing.PerKmRate * distanceKm
		timeFare := pricing.PerMinuteRate * float64(durationMin)
		fare := (pricing.BaseFare + distanceFare + timeFare) * multiplier
		fare = math.Round(fare*100) / 100

		return &models.FareEstimate{
			DistanceKm:  math.Round(distanceKm*100) / 100,
			DurationMin: durationMin,
			Fare:        fare,
			Breakdown: map[string]float64{
				"base_fare":       pricing.BaseFare,
				"distance_fare":   math.Round(distanceFare*100) / 100,
				"time_fare":       math.Round(timeFare*100) / 100,
				"type_multiplier": multiplier,
			},
		}, nil
	})
}

// RequestRide creates a new ride in requested status. Pricing and geometry
// are computed once here and never recomputed afterwards.
func (uc *RideUsecase) RequestRide(ctx context.Context, passengerID uuid.UUID, req *models.RideRequest) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.RequestRide", func() (*models.Ride, error) {
		if req.RideType == "" {
			req.RideType = models.RideTypeStandard
		}

		estimate, err := uc.EstimateFare(ctx, req)
		if err != nil {
			return nil, err
		}

		active, err := uc.repo.ActiveRideForPassenger(ctx, passengerID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, fmt.Errorf("%w: passenger already has an active ride %s", errs.ErrValidation, active.ID)
		}

		ride := &models.Ride{
			ID:          uuid.New(),
			Status:      models.RideStatusRequested,
			PassengerID: passengerID,
			Pickup:      req.Pickup,
			Destination: req.Destination,
			RideType:    req.RideType,
			Fare:        estimate.Fare,
			DistanceKm:  estimate.DistanceKm,
			DurationMin: estimate.DurationMin,
			Notes:       req.Notes,
			RequestedAt: uc.now(),
		}

		if err := uc.repo.CreateRide(ctx, ride); err != nil {
			return nil, err
		}

		logger.InfoCtx(ctx, "Ride requested",
			logger.String("ride_id", ride.ID.String()),
			logger.String("passenger_id", passengerID.String()),
			logger.String("ride_type", string(ride.RideType)),
			logger.Float64("fare", ride.Fare))

		return ride, nil
	})
}

// GetRide retrieves a ride by ID
func (uc *RideUsecase) GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	return uc.repo.GetRide(ctx, rideID)
}

// ClaimRide resolves the driver claim race. The repository's conditional
// update picks exactly one winner; every loser gets a classified error and
// the ride itself is never disturbed.
func (uc *RideUsecase) ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.ClaimRide", func() (*models.Ride, error) {
		active, err := uc.repo.ActiveRideForDriver(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, fmt.Errorf("%w: driver already has an active ride %s", errs.ErrValidation, active.ID)
		}

		if err := uc.repo.ClaimRide(ctx, rideID, driverID, uc.now()); err != nil {
			return nil, err
		}

		ride, err := uc.repo.GetRide(ctx, rideID)
		if err != nil {
			return nil, err
		}

		logger.InfoCtx(ctx, "Ride claimed",
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", driverID.String()))

		uc.notify(ctx, ride, uc.gw.PublishRideAccepted)
		return ride, nil
	})
}

// MarkArrived records the assigned driver's arrival at the pickup point
func (uc *RideUsecase) MarkArrived(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.MarkArrived", func() (*models.Ride, error) {
		return uc.driverTransition(ctx, rideID, driverID, models.RideStatusArrived, uc.gw.PublishRideArrived)
	})
}

// StartTrip moves the ride into the in-progress phase
func (uc *RideUsecase) StartTrip(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.StartTrip", func() (*models.Ride, error) {
		return uc.driverTransition(ctx, rideID, driverID, models.RideStatusStarted, uc.gw.PublishRideStarted)
	})
}

// CompleteRide finishes the ride. The frozen fare becomes the driver's
// earning the moment this transition lands.
func (uc *RideUsecase) CompleteRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.CompleteRide", func() (*models.Ride, error) {
		return uc.driverTransition(ctx, rideID, driverID, models.RideStatusCompleted, uc.gw.PublishRideCompleted)
	})
}

// driverTransition validates driver authority and the lifecycle table, then
// issues the guarded status update.
func (uc *RideUsecase) driverTransition(ctx context.Context, rideID, driverID uuid.UUID, target models.RideStatus, publish func(context.Context, *models.Ride) error) (*models.Ride, error) {
	ride, err := uc.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if !ride.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, ride.Status, target)
	}

	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, fmt.Errorf("%w: driver %s is not assigned to ride %s", errs.ErrForbidden, driverID, rideID)
	}

	if err := uc.repo.UpdateStatus(ctx, rideID, ride.Status, target, uc.now(), nil); err != nil {
		return nil, err
	}

	updated, err := uc.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Ride status updated",
		logger.String("ride_id", rideID.String()),
		logger.String("from", string(ride.Status)),
		logger.String("to", string(target)))

	uc.notify(ctx, updated, publish)
	return updated, nil
}

// CancelRide cancels the ride on the passenger's behalf. Only the owning
// passenger may cancel, and only before the trip starts; started rides can
// only complete.
func (uc *RideUsecase) CancelRide(ctx context.Context, rideID, actorID uuid.UUID, role models.Role, reason *string) (*models.Ride, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "rides.CancelRide", func() (*models.Ride, error) {
		ride, err := uc.repo.GetRide(ctx, rideID)
		if err != nil {
			return nil, err
		}

		// Lifecycle legality is decided before actor authority: a started
		// ride is uncancellable no matter who asks.
		if !ride.Status.CanTransitionTo(models.RideStatusCancelled) {
			return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, ride.Status, models.RideStatusCancelled)
		}

		if role != models.RolePassenger {
			return nil, fmt.Errorf("%w: only the passenger may cancel ride %s", errs.ErrForbidden, rideID)
		}
		if ride.PassengerID != actorID {
			return nil, fmt.Errorf("%w: passenger %s does not own ride %s", errs.ErrForbidden, actorID, rideID)
		}

		if err := uc.repo.UpdateStatus(ctx, rideID, ride.Status, models.RideStatusCancelled, uc.now(), reason); err != nil {
			return nil, err
		}

		updated, err := uc.repo.GetRide(ctx, rideID)
		if err != nil {
			return nil, err
		}

		logger.InfoCtx(ctx, "Ride cancelled",
			logger.String("ride_id", rideID.String()),
			logger.String("cancelled_by", string(role)))

		uc.notify(ctx, updated, uc.gw.PublishRideCancelled)
		return updated, nil
	})
}

// ActiveRide retrieves the user's active ride. A missing active ride is a
// not-found error at this layer, the repo's nil answer is normal.
func (uc *RideUsecase) ActiveRide(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	switch role {
	case models.RolePassenger:
		ride, err = uc.repo.ActiveRideForPassenger(ctx, userID)
	case models.RoleDriver:
		ride, err = uc.repo.ActiveRideForDriver(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
	}
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, fmt.Errorf("%w: no active ride for user %s", errs.ErrRideNotFound, userID)
	}
	return ride, nil
}

// RideHistory retrieves a page of the user's past rides
func (uc *RideUsecase) RideHistory(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.RideHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.repo.RideHistory(ctx, userID, role, page, limit)
}

// notify publishes a lifecycle event. Delivery is best effort: the state
// change already committed, so a broker outage only costs the notification.
func (uc *RideUsecase) notify(ctx context.Context, ride *models.Ride, publish func(context.Context, *models.Ride) error) {
	if err := publish(ctx, ride); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ride event",
			logger.String("ride_id", ride.ID.String()),
			logger.String("status", string(ride.Status)),
			logger.Err(err))
	}
}

func validateRideRequest(req *models.RideRequest) error {
	if err := validateCoordinates(req.Pickup); err != nil {
		return fmt.Errorf("%w: pickup: %v", errs.ErrValidation, err)
	}
	if err := validateCoordinates(req.Destination); err != nil {
		return fmt.Errorf("%w: destination: %v", errs.ErrValidation, err)
	}
	if req.RideType != "" {
		if _, ok := rideTypeMultipliers[req.RideType]; !ok {
			return fmt.Errorf("%w: unknown ride type %q", errs.ErrValidation, req.RideType)
		}
	}
	return nil
}

func validateCoordinates(loc models.Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range", loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range", loc.Longitude)
	}
	return nil
}
