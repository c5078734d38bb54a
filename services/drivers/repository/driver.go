package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/twende-app/twende/internal/pkg/constants"
	"github.com/twende-app/twende/internal/pkg/database"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
)

// Presence entries expire on their own, so a driver that goes dark drops
// out of the available set without a logout call.
const presenceTTL = 5 * time.Minute

const (
	statusOnline  = "online"
	statusOffline = "offline"
)

// DriverRepo aggregates earnings and stats straight off the rides and
// ratings tables and keeps presence in Redis.
type DriverRepo struct {
	cfg   *models.Config
	db    *sqlx.DB
	redis *database.RedisClient
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(cfg *models.Config, db *sqlx.DB, redis *database.RedisClient) *DriverRepo {
	return &DriverRepo{
		cfg:   cfg,
		db:    db,
		redis: redis,
	}
}

// EarningsBetween sums completed-ride fares in the half-open window
// [start, end), anchored on completed_at.
func (r *DriverRepo) EarningsBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) (*models.EarningsWindow, error) {
	query := `
		SELECT COALESCE(SUM(fare), 0) AS total_earnings,
			COUNT(*) AS ride_count
		FROM rides
		WHERE driver_id = $1 AND status = $2
			AND completed_at >= $3 AND completed_at < $4
	`

	var window models.EarningsWindow
	if err := r.db.GetContext(ctx, &window, query, driverID, models.RideStatusCompleted, start, end); err != nil {
		return nil, fmt.Errorf("%w: earnings window: %v", errs.ErrStoreUnavailable, err)
	}

	return &window, nil
}

// LifetimeCounters returns the driver's all-time ride counts and earnings
func (r *DriverRepo) LifetimeCounters(ctx context.Context, driverID uuid.UUID) (*models.DriverLifetime, error) {
	query := `
		SELECT COUNT(*) AS total_rides,
			COUNT(*) FILTER (WHERE status = $2) AS completed_rides,
			COUNT(*) FILTER (WHERE status = $3) AS cancelled_rides,
			COALESCE(SUM(fare) FILTER (WHERE status = $2), 0) AS total_earnings
		FROM rides
		WHERE driver_id = $1
	`

	var lifetime models.DriverLifetime
	if err := r.db.GetContext(ctx, &lifetime, query, driverID, models.RideStatusCompleted, models.RideStatusCancelled); err != nil {
		return nil, fmt.Errorf("%w: lifetime counters: %v", errs.ErrStoreUnavailable, err)
	}

	return &lifetime, nil
}

// AverageDriverRating averages the non-null passenger-given ratings
func (r *DriverRepo) AverageDriverRating(ctx context.Context, driverID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(AVG(driver_rating), 0)
		FROM ratings
		WHERE driver_id = $1 AND driver_rating IS NOT NULL
	`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, driverID); err != nil {
		return 0, fmt.Errorf("%w: average rating: %v", errs.ErrStoreUnavailable, err)
	}

	return avg, nil
}

// SetPresence writes the presence hash with a TTL and keeps the available
// set in sync with it.
func (r *DriverRepo) SetPresence(ctx context.Context, driverID uuid.UUID, presence *models.DriverPresence) error {
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	err := r.redis.HSet(ctx, key,
		constants.FieldStatus, presence.Status,
		constants.FieldLastActive, presence.LastActive.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: set presence: %v", errs.ErrStoreUnavailable, err)
	}

	if err := r.redis.Expire(ctx, key, presenceTTL); err != nil {
		return fmt.Errorf("%w: expire presence: %v", errs.ErrStoreUnavailable, err)
	}

	if presence.IsOnline {
		err = r.redis.SAdd(ctx, constants.KeyAvailableDrivers, driverID.String())
	} else {
		err = r.redis.SRem(ctx, constants.KeyAvailableDrivers, driverID.String())
	}
	if err != nil {
		return fmt.Errorf("%w: update available set: %v", errs.ErrStoreUnavailable, err)
	}

	return nil
}

// GetPresence reads the presence hash. An expired or never-written entry
// reads as offline.
func (r *DriverRepo) GetPresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error) {
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	fields, err := r.redis.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: get presence: %v", errs.ErrStoreUnavailable, err)
	}

	presence := &models.DriverPresence{
		DriverID: driverID.String(),
		Status:   statusOffline,
	}

	if status, ok := fields[constants.FieldStatus]; ok {
		presence.Status = status
		presence.IsOnline = status == statusOnline
	}
	if raw, ok := fields[constants.FieldLastActive]; ok {
		if lastActive, err := time.Parse(time.RFC3339, raw); err == nil {
			presence.LastActive = lastActive
		}
	}

	return presence, nil
}
