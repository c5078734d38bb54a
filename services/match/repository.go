package match

import (
	"context"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// MatchRepo defines the interface for match data access operations
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/twende-app/twende/services/match MatchRepo
type MatchRepo interface {
	// ListClaimableRides reads the current requested, unassigned rides,
	// oldest first.
	ListClaimableRides(ctx context.Context, limit int) ([]*models.AvailableRide, error)

	// IncrementRejectCount bumps the driver's reject counter for the ride
	// and returns the new count.
	IncrementRejectCount(ctx context.Context, rideID, driverID uuid.UUID) (int64, error)
}
