package match

import (
	"context"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// RideLifecycle is the slice of the ride lifecycle the matching flow
// depends on. The rides usecase satisfies it; keeping the interface here
// lets the matcher be tested without the rides package.
type RideLifecycle interface {
	ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)
}

// MatchUC defines the interface for driver-side matching logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/twende-app/twende/services/match MatchUC
type MatchUC interface {
	// ListClaimable returns the open ride pool shown to drivers.
	ListClaimable(ctx context.Context, limit int) ([]*models.AvailableRide, error)

	// ClaimRide attempts to win the ride for the driver. Exactly one
	// concurrent claimer succeeds.
	ClaimRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.Ride, error)

	// RejectRide records that the driver passed on the ride. Telemetry
	// only: the ride stays claimable for everyone else.
	RejectRide(ctx context.Context, rideID, driverID uuid.UUID) error
}
