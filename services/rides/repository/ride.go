package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
)

// RideRepo is the Postgres-backed ride store.
type RideRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(cfg *models.Config, db *sqlx.DB) *RideRepo {
	return &RideRepo{
		cfg: cfg,
		db:  db,
	}
}

// rideRow is the flat scan target for the rides table.
type rideRow struct {
	ID                 uuid.UUID      `db:"id"`
	Status             string         `db:"status"`
	PassengerID        uuid.UUID      `db:"passenger_id"`
	DriverID           uuid.NullUUID  `db:"driver_id"`
	PickupLatitude     float64        `db:"pickup_latitude"`
	PickupLongitude    float64        `db:"pickup_longitude"`
	PickupAddress      string         `db:"pickup_address"`
	DestLatitude       float64        `db:"destination_latitude"`
	DestLongitude      float64        `db:"destination_longitude"`
	DestAddress        string         `db:"destination_address"`
	RideType           string         `db:"ride_type"`
	Fare               float64        `db:"fare"`
	DistanceKm         float64        `db:"distance_km"`
	DurationMin        int            `db:"duration_min"`
	Notes              sql.NullString `db:"notes"`
	RequestedAt        time.Time      `db:"requested_at"`
	AcceptedAt         sql.NullTime   `db:"accepted_at"`
	ArrivedAt          sql.NullTime   `db:"arrived_at"`
	StartedAt          sql.NullTime   `db:"started_at"`
	CompletedAt        sql.NullTime   `db:"completed_at"`
	CancelledAt        sql.NullTime   `db:"cancelled_at"`
	CancellationReason sql.NullString `db:"cancellation_reason"`
}

const rideColumns = `
	id, status, passenger_id, driver_id,
	pickup_latitude, pickup_longitude, pickup_address,
	destination_latitude, destination_longitude, destination_address,
	ride_type, fare, distance_km, duration_min, notes,
	requested_at, accepted_at, arrived_at, started_at, completed_at, cancelled_at,
	cancellation_reason`

func (row *rideRow) toModel() *models.Ride {
	ride := &models.Ride{
		ID:          row.ID,
		Status:      models.RideStatus(row.Status),
		PassengerID: row.PassengerID,
		Pickup: models.Location{
			Latitude:  row.PickupLatitude,
			Longitude: row.PickupLongitude,
			Address:   row.PickupAddress,
		},
		Destination: models.Location{
			Latitude:  row.DestLatitude,
			Longitude: row.DestLongitude,
			Address:   row.DestAddress,
		},
		RideType:    models.RideType(row.RideType),
		Fare:        row.Fare,
		DistanceKm:  row.DistanceKm,
		DurationMin: row.DurationMin,
		RequestedAt: row.RequestedAt,
	}

	if row.DriverID.Valid {
		driverID := row.DriverID.UUID
		ride.DriverID = &driverID
	}
	if row.Notes.Valid {
		notes := row.Notes.String
		ride.Notes = &notes
	}
	if row.AcceptedAt.Valid {
		ride.AcceptedAt = &row.AcceptedAt.Time
	}
	if row.ArrivedAt.Valid {
		ride.ArrivedAt = &row.ArrivedAt.Time
	}
	if row.StartedAt.Valid {
		ride.StartedAt = &row.StartedAt.Time
	}
	if row.CompletedAt.Valid {
		ride.CompletedAt = &row.CompletedAt.Time
	}
	if row.CancelledAt.Valid {
		ride.CancelledAt = &row.CancelledAt.Time
	}
	if row.CancellationReason.Valid {
		reason := row.CancellationReason.String
		ride.CancellationReason = &reason
	}

	return ride
}

// storeFailure classifies driver-level errors as transient store failures.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", errs.ErrStoreUnavailable, op, err)
}

// CreateRide inserts a new ride in requested status
func (r *RideRepo) CreateRide(ctx context.Context, ride *models.Ride) error {
	query := `
		INSERT INTO rides (
			id, status, passenger_id,
			pickup_latitude, pickup_longitude, pickup_address,
			destination_latitude, destination_longitude, destination_address,
			ride_type, fare, distance_km, duration_min, notes, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		ride.ID,
		ride.Status,
		ride.PassengerID,
		ride.Pickup.Latitude,
		ride.Pickup.Longitude,
		ride.Pickup.Address,
		ride.Destination.Latitude,
		ride.Destination.Longitude,
		ride.Destination.Address,
		ride.RideType,
		ride.Fare,
		ride.DistanceKm,
		ride.DurationMin,
		ride.Notes,
		ride.RequestedAt,
	)
	if err != nil {
		return storeFailure("create ride", err)
	}

	return nil
}

// GetRide retrieves a ride by ID
func (r *RideRepo) GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	var row rideRow
	err := r.db.GetContext(ctx, &row, query, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", errs.ErrRideNotFound, rideID)
		}
		return nil, storeFailure("get ride", err)
	}

	return row.toModel(), nil
}

// ClaimRide atomically assigns the driver to a requested, unclaimed ride.
// The single conditional UPDATE is the entire race arbiter: whichever
// driver's statement matches the row first wins, every other concurrent
// claim matches zero rows and is classified by a follow-up read.
func (r *RideRepo) ClaimRide(ctx context.Context, rideID, driverID uuid.UUID, at time.Time) error {
	query := `
		UPDATE rides
		SET status = $1, driver_id = $2, accepted_at = $3
		WHERE id = $4 AND status = $5 AND driver_id IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, models.RideStatusAccepted, driverID, at, rideID, models.RideStatusRequested)
	if err != nil {
		return storeFailure("claim ride", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeFailure("claim ride", err)
	}
	if affected == 1 {
		return nil
	}

	// Zero rows: the ride is gone, already claimed, or no longer claimable.
	ride, err := r.GetRide(ctx, rideID)
	if err != nil {
		return err
	}

	if ride.DriverID != nil {
		return fmt.Errorf("%w: ride %s", errs.ErrRideAlreadyClaimed, rideID)
	}
	return fmt.Errorf("%w: ride %s is %s", errs.ErrInvalidTransition, rideID, ride.Status)
}

// timestampColumns maps each target status to the column stamped on entry.
var timestampColumns = map[models.RideStatus]string{
	models.RideStatusAccepted:  "accepted_at",
	models.RideStatusArrived:   "arrived_at",
	models.RideStatusStarted:   "started_at",
	models.RideStatusCompleted: "completed_at",
	models.RideStatusCancelled: "cancelled_at",
}

// UpdateStatus moves the ride from the expected to the target status. The
// expected status in the WHERE clause guards against concurrent writers:
// losing the race surfaces as an invalid transition, same as a stale client.
func (r *RideRepo) UpdateStatus(ctx context.Context, rideID uuid.UUID, from, to models.RideStatus, at time.Time, reason *string) error {
	column, ok := timestampColumns[to]
	if !ok {
		return fmt.Errorf("%w: no timestamp column for status %s", errs.ErrInvalidTransition, to)
	}

	var (
		result sql.Result
		err    error
	)
	if to == models.RideStatusCancelled {
		query := fmt.Sprintf(`UPDATE rides SET status = $1, %s = $2, cancellation_reason = $3 WHERE id = $4 AND status = $5`, column)
		result, err = r.db.ExecContext(ctx, query, to, at, reason, rideID, from)
	} else {
		query := fmt.Sprintf(`UPDATE rides SET status = $1, %s = $2 WHERE id = $3 AND status = $4`, column)
		result, err = r.db.ExecContext(ctx, query, to, at, rideID, from)
	}
	if err != nil {
		return storeFailure("update ride status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeFailure("update ride status", err)
	}
	if affected == 1 {
		return nil
	}

	ride, err := r.GetRide(ctx, rideID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: ride %s is %s, expected %s", errs.ErrInvalidTransition, rideID, ride.Status, from)
}

// ActiveRideForPassenger retrieves the passenger's current non-terminal ride.
// Returns nil without error when there is none.
func (r *RideRepo) ActiveRideForPassenger(ctx context.Context, passengerID uuid.UUID) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + `
		FROM rides
		WHERE passenger_id = $1
		AND status IN ('requested', 'accepted', 'arrived', 'started')
		ORDER BY requested_at DESC
		LIMIT 1`

	var row rideRow
	err := r.db.GetContext(ctx, &row, query, passengerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeFailure("active ride for passenger", err)
	}

	return row.toModel(), nil
}

// ActiveRideForDriver retrieves the driver's current non-terminal ride.
// Returns nil without error when there is none.
func (r *RideRepo) ActiveRideForDriver(ctx context.Context, driverID uuid.UUID) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + `
		FROM rides
		WHERE driver_id = $1
		AND status IN ('accepted', 'arrived', 'started')
		ORDER BY accepted_at DESC
		LIMIT 1`

	var row rideRow
	err := r.db.GetContext(ctx, &row, query, driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeFailure("active ride for driver", err)
	}

	return row.toModel(), nil
}

// RideHistory retrieves a page of the user's past rides, newest first
func (r *RideRepo) RideHistory(ctx context.Context, userID uuid.UUID, role models.Role, page, limit int) (*models.RideHistory, error) {
	var column string
	switch role {
	case models.RolePassenger:
		column = "passenger_id"
	case models.RoleDriver:
		column = "driver_id"
	default:
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM rides WHERE %s = $1`, column)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, storeFailure("count ride history", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM rides
		WHERE %s = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3`, rideColumns, column)

	var rows []rideRow
	offset := (page - 1) * limit
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, storeFailure("get ride history", err)
	}

	history := &models.RideHistory{
		Rides: make([]*models.Ride, 0, len(rows)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range rows {
		history.Rides = append(history.Rides, rows[i].toModel())
	}

	return history, nil
}
