package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/constants"
	"github.com/twende-app/twende/internal/pkg/database"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/drivers/repository"
)

func setupDriverRepo(t *testing.T) (*repository.DriverRepo, sqlmock.Sqlmock, redismock.ClientMock) {
	mockDB, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	redisClient, redisMock := redismock.NewClientMock()

	db := sqlx.NewDb(mockDB, "postgres")
	repo := repository.NewDriverRepository(&models.Config{}, db, database.NewRedisClientFromExisting(redisClient))
	return repo, sqlMock, redisMock
}

func TestEarningsBetween(t *testing.T) {
	repo, sqlMock, _ := setupDriverRepo(t)

	driverID := uuid.New()
	start := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	sqlMock.ExpectQuery(`SELECT COALESCE\(SUM\(fare\), 0\) AS total_earnings`).
		WithArgs(driverID, models.RideStatusCompleted, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"total_earnings", "ride_count"}).AddRow(450.0, 3))

	window, err := repo.EarningsBetween(context.Background(), driverID, start, end)

	require.NoError(t, err)
	assert.Equal(t, 450.0, window.TotalEarnings)
	assert.Equal(t, 3, window.RideCount)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestEarningsBetween_EmptyWindow(t *testing.T) {
	repo, sqlMock, _ := setupDriverRepo(t)

	driverID := uuid.New()
	start := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	end := start.Add(12 * time.Hour)

	// SUM over no rows coalesces to zero, so the window always scans.
	sqlMock.ExpectQuery(`SELECT COALESCE\(SUM\(fare\), 0\) AS total_earnings`).
		WithArgs(driverID, models.RideStatusCompleted, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"total_earnings", "ride_count"}).AddRow(0.0, 0))

	window, err := repo.EarningsBetween(context.Background(), driverID, start, end)

	require.NoError(t, err)
	assert.Zero(t, window.TotalEarnings)
	assert.Zero(t, window.RideCount)
}

func TestLifetimeCounters(t *testing.T) {
	repo, sqlMock, _ := setupDriverRepo(t)

	driverID := uuid.New()

	sqlMock.ExpectQuery(`SELECT COUNT\(\*\) AS total_rides`).
		WithArgs(driverID, models.RideStatusCompleted, models.RideStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"total_rides", "completed_rides", "cancelled_rides", "total_earnings"}).
			AddRow(120, 100, 15, 52000.0))

	lifetime, err := repo.LifetimeCounters(context.Background(), driverID)

	require.NoError(t, err)
	assert.Equal(t, 120, lifetime.TotalRides)
	assert.Equal(t, 100, lifetime.CompletedRides)
	assert.Equal(t, 15, lifetime.CancelledRides)
	assert.Equal(t, 52000.0, lifetime.TotalEarnings)
}

func TestAverageDriverRating(t *testing.T) {
	repo, sqlMock, _ := setupDriverRepo(t)

	driverID := uuid.New()

	sqlMock.ExpectQuery(`SELECT COALESCE\(AVG\(driver_rating\), 0\)`).
		WithArgs(driverID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4.7))

	avg, err := repo.AverageDriverRating(context.Background(), driverID)

	require.NoError(t, err)
	assert.Equal(t, 4.7, avg)
}

func TestAverageDriverRating_StoreFailure(t *testing.T) {
	repo, sqlMock, _ := setupDriverRepo(t)

	sqlMock.ExpectQuery(`SELECT COALESCE\(AVG\(driver_rating\), 0\)`).
		WillReturnError(fmt.Errorf("connection refused"))

	_, err := repo.AverageDriverRating(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}

func TestSetPresence_Online(t *testing.T) {
	repo, _, redisMock := setupDriverRepo(t)

	driverID := uuid.New()
	lastActive := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	redisMock.ExpectHSet(key,
		constants.FieldStatus, "online",
		constants.FieldLastActive, lastActive.Format(time.RFC3339),
	).SetVal(2)
	redisMock.ExpectExpire(key, 5*time.Minute).SetVal(true)
	redisMock.ExpectSAdd(constants.KeyAvailableDrivers, driverID.String()).SetVal(1)

	err := repo.SetPresence(context.Background(), driverID, &models.DriverPresence{
		DriverID:   driverID.String(),
		IsOnline:   true,
		Status:     "online",
		LastActive: lastActive,
	})

	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestSetPresence_OfflineRemovesFromAvailableSet(t *testing.T) {
	repo, _, redisMock := setupDriverRepo(t)

	driverID := uuid.New()
	lastActive := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	redisMock.ExpectHSet(key,
		constants.FieldStatus, "offline",
		constants.FieldLastActive, lastActive.Format(time.RFC3339),
	).SetVal(2)
	redisMock.ExpectExpire(key, 5*time.Minute).SetVal(true)
	redisMock.ExpectSRem(constants.KeyAvailableDrivers, driverID.String()).SetVal(1)

	err := repo.SetPresence(context.Background(), driverID, &models.DriverPresence{
		DriverID:   driverID.String(),
		IsOnline:   false,
		Status:     "offline",
		LastActive: lastActive,
	})

	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetPresence(t *testing.T) {
	repo, _, redisMock := setupDriverRepo(t)

	driverID := uuid.New()
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	redisMock.ExpectHGetAll(key).SetVal(map[string]string{
		constants.FieldStatus:     "online",
		constants.FieldLastActive: "2025-06-18T12:00:00Z",
	})

	presence, err := repo.GetPresence(context.Background(), driverID)

	require.NoError(t, err)
	assert.True(t, presence.IsOnline)
	assert.Equal(t, "online", presence.Status)
	assert.Equal(t, time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC), presence.LastActive)
}

func TestGetPresence_ExpiredReadsOffline(t *testing.T) {
	repo, _, redisMock := setupDriverRepo(t)

	driverID := uuid.New()
	key := fmt.Sprintf(constants.KeyDriverPresence, driverID)

	redisMock.ExpectHGetAll(key).SetVal(map[string]string{})

	presence, err := repo.GetPresence(context.Background(), driverID)

	require.NoError(t, err)
	assert.False(t, presence.IsOnline)
	assert.Equal(t, "offline", presence.Status)
}
