package match

import (
	"context"

	"github.com/google/uuid"
)

// MatchGW defines the interface for match event publishing
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/twende-app/twende/services/match MatchGW
type MatchGW interface {
	PublishMatchRejected(ctx context.Context, rideID, driverID uuid.UUID) error
}
