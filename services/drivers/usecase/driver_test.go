package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/models"
	"github.com/twende-app/twende/services/drivers/mocks"
)

// Wednesday, mid-June. Makes the Monday anchor and the seven-day rolling
// anchor visibly different dates.
var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func newTestUsecase(t *testing.T) (*DriverUsecase, *mocks.MockDriverRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockDriverRepo(ctrl)

	cfg := &models.Config{}
	cfg.Pricing.Currency = "KES"

	uc := NewDriverUsecase(cfg, mockRepo)
	uc.now = func() time.Time { return testNow }
	return uc, mockRepo
}

func TestEarnings_Today(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	midnight := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, midnight, testNow).
		Return(&models.EarningsWindow{TotalEarnings: 450, RideCount: 3}, nil)

	earnings, err := uc.Earnings(context.Background(), driverID, models.PeriodToday)

	require.NoError(t, err)
	assert.Equal(t, models.PeriodToday, earnings.Period)
	assert.Equal(t, 450.0, earnings.TotalEarnings)
	assert.Equal(t, 3, earnings.TotalRides)
	assert.Equal(t, 150.0, earnings.AverageEarningsPerRide)
	assert.Equal(t, "KES", earnings.Currency)
}

func TestEarnings_WeekIsRollingNotCalendar(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	// Seven days back from the call, not the most recent Monday.
	sevenDaysAgo := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, sevenDaysAgo, testNow).
		Return(&models.EarningsWindow{TotalEarnings: 1200, RideCount: 8}, nil)

	earnings, err := uc.Earnings(context.Background(), driverID, models.PeriodWeek)

	require.NoError(t, err)
	assert.Equal(t, 1200.0, earnings.TotalEarnings)
	assert.Equal(t, 150.0, earnings.AverageEarningsPerRide)
}

func TestEarnings_MonthAndYearWindows(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	tests := []struct {
		period models.EarningsPeriod
		start  time.Time
	}{
		{models.PeriodMonth, testNow.AddDate(0, 0, -30)},
		{models.PeriodYear, testNow.AddDate(0, 0, -365)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			mockRepo.EXPECT().
				EarningsBetween(gomock.Any(), driverID, tt.start, testNow).
				Return(&models.EarningsWindow{}, nil)

			_, err := uc.Earnings(context.Background(), driverID, tt.period)
			assert.NoError(t, err)
		})
	}
}

func TestEarnings_NoRides(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, gomock.Any(), testNow).
		Return(&models.EarningsWindow{TotalEarnings: 0, RideCount: 0}, nil)

	earnings, err := uc.Earnings(context.Background(), driverID, models.PeriodToday)

	require.NoError(t, err)
	assert.Zero(t, earnings.TotalEarnings)
	assert.Zero(t, earnings.TotalRides)
	assert.Zero(t, earnings.AverageEarningsPerRide)
}

func TestEarnings_UnknownPeriod(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.Earnings(context.Background(), uuid.New(), models.EarningsPeriod("quarter"))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestStats_CalendarWindows(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	midnight := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().
		LifetimeCounters(gomock.Any(), driverID).
		Return(&models.DriverLifetime{
			TotalRides:     120,
			CompletedRides: 100,
			CancelledRides: 15,
			TotalEarnings:  52000,
		}, nil)
	mockRepo.EXPECT().
		AverageDriverRating(gomock.Any(), driverID).
		Return(4.7, nil)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, midnight, testNow).
		Return(&models.EarningsWindow{TotalEarnings: 900, RideCount: 4}, nil)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, monday, testNow).
		Return(&models.EarningsWindow{TotalEarnings: 3100, RideCount: 14}, nil)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, firstOfMonth, testNow).
		Return(&models.EarningsWindow{TotalEarnings: 8800, RideCount: 41}, nil)

	stats, err := uc.Stats(context.Background(), driverID)

	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalRides)
	assert.Equal(t, 100, stats.CompletedRides)
	assert.Equal(t, 15, stats.CancelledRides)
	assert.Equal(t, 52000.0, stats.TotalEarnings)
	assert.Equal(t, 4.7, stats.AverageRating)
	assert.Equal(t, 4, stats.TodayRides)
	assert.Equal(t, 900.0, stats.TodayEarnings)
	assert.Equal(t, 14, stats.ThisWeekRides)
	assert.Equal(t, 3100.0, stats.ThisWeekEarnings)
	assert.Equal(t, 41, stats.ThisMonthRides)
	assert.Equal(t, 8800.0, stats.ThisMonthEarnings)
}

func TestStats_NoRatingsYet(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		LifetimeCounters(gomock.Any(), driverID).
		Return(&models.DriverLifetime{}, nil)
	mockRepo.EXPECT().
		AverageDriverRating(gomock.Any(), driverID).
		Return(0.0, nil)
	mockRepo.EXPECT().
		EarningsBetween(gomock.Any(), driverID, gomock.Any(), testNow).
		Return(&models.EarningsWindow{}, nil).
		Times(3)

	stats, err := uc.Stats(context.Background(), driverID)

	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.TotalRides)
}

func TestStartOfWeek_MondayIsItsOwnAnchor(t *testing.T) {
	monday := time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), startOfWeek(monday))

	sunday := time.Date(2025, 6, 22, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))
}

func TestSetPresence(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		SetPresence(gomock.Any(), driverID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, presence *models.DriverPresence) error {
			assert.True(t, presence.IsOnline)
			assert.Equal(t, "online", presence.Status)
			assert.Equal(t, testNow, presence.LastActive)
			return nil
		})

	presence, err := uc.SetPresence(context.Background(), driverID, true)

	require.NoError(t, err)
	assert.True(t, presence.IsOnline)
	assert.Equal(t, driverID.String(), presence.DriverID)
}

func TestSetPresence_Offline(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		SetPresence(gomock.Any(), driverID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, presence *models.DriverPresence) error {
			assert.False(t, presence.IsOnline)
			assert.Equal(t, "offline", presence.Status)
			return nil
		})

	_, err := uc.SetPresence(context.Background(), driverID, false)
	assert.NoError(t, err)
}

func TestTogglePresence_OfflineGoesOnline(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	// An expired presence entry reads as offline, so the toggle lands online.
	mockRepo.EXPECT().
		GetPresence(gomock.Any(), driverID).
		Return(&models.DriverPresence{DriverID: driverID.String(), IsOnline: false, Status: "offline"}, nil)
	mockRepo.EXPECT().
		SetPresence(gomock.Any(), driverID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, presence *models.DriverPresence) error {
			assert.True(t, presence.IsOnline)
			assert.Equal(t, "online", presence.Status)
			return nil
		})

	presence, err := uc.TogglePresence(context.Background(), driverID)

	require.NoError(t, err)
	assert.True(t, presence.IsOnline)
}

func TestTogglePresence_OnlineGoesOffline(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		GetPresence(gomock.Any(), driverID).
		Return(&models.DriverPresence{DriverID: driverID.String(), IsOnline: true, Status: "online"}, nil)
	mockRepo.EXPECT().
		SetPresence(gomock.Any(), driverID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, presence *models.DriverPresence) error {
			assert.False(t, presence.IsOnline)
			assert.Equal(t, "offline", presence.Status)
			return nil
		})

	presence, err := uc.TogglePresence(context.Background(), driverID)

	require.NoError(t, err)
	assert.False(t, presence.IsOnline)
}

func TestGetPresence(t *testing.T) {
	uc, mockRepo := newTestUsecase(t)
	driverID := uuid.New()

	mockRepo.EXPECT().
		GetPresence(gomock.Any(), driverID).
		Return(&models.DriverPresence{DriverID: driverID.String(), IsOnline: true, Status: "online"}, nil)

	presence, err := uc.GetPresence(context.Background(), driverID)

	require.NoError(t, err)
	assert.True(t, presence.IsOnline)
}
