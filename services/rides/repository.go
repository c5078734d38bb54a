package rides

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// RideRepo defines the interface for ride data access operations
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/twende-app/twende/services/rides RideRepo
type RideRepo interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)

	// ClaimRide atomically assigns the driver to a still-unclaimed requested
	// ride. Exactly one concurrent caller succeeds; losers get
	// errs.ErrRideAlreadyClaimed or errs.ErrInvalidTransition.
	ClaimRide(ctx context.Context, rideID, driverID uuid.UUID, at time.Time) error

	// UpdateStatus moves the ride from the expected status to the target
	// status in a single conditional statement. A concurrent change of the
	// expected status surfaces as errs.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, rideID uuid.UUID, from, to models.RideStatus, at time.Time, reason *string) error

	ActiveRideForPassenger(ctx context.Context, passengerID uuid.UUID) (*models.Ride, error)
	ActiveRideForDriver(ctx context.Context, driverID uuid.UUID) (*models.Ride, error)
	RideHistory(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.RideHistory, error)

	UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	GetRatingByRideID(ctx context.Context, rideID uuid.UUID) (*models.Rating, error)
}
