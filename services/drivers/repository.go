package drivers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// DriverRepo defines the interface for driver statistics and presence storage
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/twende-app/twende/services/drivers DriverRepo
type DriverRepo interface {
	// EarningsBetween sums fares of completed rides in the half-open window
	// [start, end).
	EarningsBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) (*models.EarningsWindow, error)

	LifetimeCounters(ctx context.Context, driverID uuid.UUID) (*models.DriverLifetime, error)

	// AverageDriverRating averages the passenger-given ratings the driver has
	// received. Returns 0 when the driver has none.
	AverageDriverRating(ctx context.Context, driverID uuid.UUID) (float64, error)

	SetPresence(ctx context.Context, driverID uuid.UUID, presence *models.DriverPresence) error
	GetPresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error)
}
