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
	"github.com/twende-app/twende/internal/utils"
)

// Geohash precision used to annotate pickup points. Six characters is
// roughly a 1.2km by 600m cell.
const pickupGeohashPrecision = 6

// Reject counters expire on their own so abandoned rides do not pile up
// telemetry keys.
const rejectCounterTTL = 2 * time.Hour

// MatchRepo reads the claimable pool from Postgres and keeps reject
// telemetry in Redis.
type MatchRepo struct {
	cfg   *models.Config
	db    *sqlx.DB
	redis *database.RedisClient
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(cfg *models.Config, db *sqlx.DB, redis *database.RedisClient) *MatchRepo {
	return &MatchRepo{
		cfg:   cfg,
		db:    db,
		redis: redis,
	}
}

type availableRideRow struct {
	ID              uuid.UUID `db:"id"`
	PickupAddress   string    `db:"pickup_address"`
	DestAddress     string    `db:"destination_address"`
	PickupLatitude  float64   `db:"pickup_latitude"`
	PickupLongitude float64   `db:"pickup_longitude"`
	RideType        string    `db:"ride_type"`
	Fare            float64   `db:"fare"`
	DistanceKm      float64   `db:"distance_km"`
	DurationMin     int       `db:"duration_min"`
	RequestedAt     time.Time `db:"requested_at"`
}

// ListClaimableRides returns requested, unassigned rides oldest first. The
// pool is a plain read: claiming is arbitrated later by the lifecycle's
// conditional update, so a stale entry here just loses the race.
func (r *MatchRepo) ListClaimableRides(ctx context.Context, limit int) ([]*models.AvailableRide, error) {
	query := `
		SELECT id, pickup_address, destination_address,
			pickup_latitude, pickup_longitude,
			ride_type, fare, distance_km, duration_min, requested_at
		FROM rides
		WHERE status = $1 AND driver_id IS NULL
		ORDER BY requested_at ASC
		LIMIT $2
	`

	var rows []availableRideRow
	if err := r.db.SelectContext(ctx, &rows, query, models.RideStatusRequested, limit); err != nil {
		return nil, fmt.Errorf("%w: list claimable rides: %v", errs.ErrStoreUnavailable, err)
	}

	available := make([]*models.AvailableRide, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		available = append(available, &models.AvailableRide{
			ID:                 row.ID,
			PickupAddress:      row.PickupAddress,
			DestinationAddress: row.DestAddress,
			PickupLatitude:     row.PickupLatitude,
			PickupLongitude:    row.PickupLongitude,
			PickupGeohash: utils.EncodeLocation(models.Location{
				Latitude:  row.PickupLatitude,
				Longitude: row.PickupLongitude,
			}, pickupGeohashPrecision),
			RideType:    models.RideType(row.RideType),
			Fare:        row.Fare,
			DistanceKm:  row.DistanceKm,
			DurationMin: row.DurationMin,
			RequestedAt: row.RequestedAt,
		})
	}

	return available, nil
}

// IncrementRejectCount bumps the driver's reject counter for the ride
func (r *MatchRepo) IncrementRejectCount(ctx context.Context, rideID, driverID uuid.UUID) (int64, error) {
	key := fmt.Sprintf(constants.KeyRideRejects, rideID)

	count, err := r.redis.HIncrBy(ctx, key, driverID.String(), 1)
	if err != nil {
		return 0, fmt.Errorf("%w: increment reject count: %v", errs.ErrStoreUnavailable, err)
	}

	if err := r.redis.Expire(ctx, key, rejectCounterTTL); err != nil {
		return count, fmt.Errorf("%w: expire reject counter: %v", errs.ErrStoreUnavailable, err)
	}

	return count, nil
}
