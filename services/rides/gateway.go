package rides

import (
	"context"

	"github.com/twende-app/twende/internal/pkg/models"
)

// RideGW defines the interface for ride event publishing
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/twende-app/twende/services/rides RideGW
type RideGW interface {
	PublishRideAccepted(ctx context.Context, ride *models.Ride) error
	PublishRideArrived(ctx context.Context, ride *models.Ride) error
	PublishRideStarted(ctx context.Context, ride *models.Ride) error
	PublishRideCompleted(ctx context.Context, ride *models.Ride) error
	PublishRideCancelled(ctx context.Context, ride *models.Ride) error
}
