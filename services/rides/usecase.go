package rides

import (
	"context"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// RideUC defines the interface for ride lifecycle business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/twende-app/twende/services/rides RideUC
type RideUC interface {
	RequestRide(ctx context.Context, passengerID uuid.UUID, req *models.RideRequest) (*models.Ride, error)
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	EstimateFare(ctx context.Context, req *models.RideRequest) (*models.FareEstimate, error)

	ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	MarkArrived(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	StartTrip(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	CompleteRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
	CancelRide(ctx context.Context, rideID, actorID uuid.UUID, role models.Role, reason *string) (*models.Ride, error)

	ActiveRide(ctx context.Context, userID uuid.UUID, role models.Role) (*models.Ride, error)
	RideHistory(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.RideHistory, error)

	SubmitRating(ctx context.Context, req *models.RatingRequest) (*models.Rating, error)
	GetRating(ctx context.Context, rideID uuid.UUID) (*models.Rating, error)
}
