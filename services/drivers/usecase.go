package drivers

import (
	"context"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/models"
)

// DriverUC defines the interface for driver earnings, stats and presence
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/twende-app/twende/services/drivers DriverUC
type DriverUC interface {
	// Earnings reports the driver's completed-ride earnings over a rolling
	// window anchored at the time of the call.
	Earnings(ctx context.Context, driverID uuid.UUID, period models.EarningsPeriod) (*models.DriverEarnings, error)

	// Stats recomputes the full performance snapshot from the ride and
	// rating stores. Its today/week/month breakdowns are calendar-aligned,
	// unlike Earnings.
	Stats(ctx context.Context, driverID uuid.UUID) (*models.DriverStats, error)

	SetPresence(ctx context.Context, driverID uuid.UUID, online bool) (*models.DriverPresence, error)

	// TogglePresence flips the driver's current online state. An expired
	// or never-set presence counts as offline, so the first toggle goes
	// online.
	TogglePresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error)

	GetPresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error)
}
