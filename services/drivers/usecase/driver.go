package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/errs"
	"github.com/twende-app/twende/internal/pkg/logger"
	"github.com/twende-app/twende/internal/pkg/models"
	nrpkg "github.com/twende-app/twende/internal/pkg/newrelic"
	"github.com/twende-app/twende/services/drivers"
)

const (
	statusOnline  = "online"
	statusOffline = "offline"
)

// DriverUsecase implements driver earnings, stats and presence.
//
// Every report is recomputed from the stores on the call; nothing is
// cached, so the numbers always reflect the current ride table.
type DriverUsecase struct {
	cfg  *models.Config
	repo drivers.DriverRepo
	now  func() time.Time
}

// NewDriverUsecase creates a new driver usecase
func NewDriverUsecase(cfg *models.Config, repo drivers.DriverRepo) *DriverUsecase {
	return &DriverUsecase{
		cfg:  cfg,
		repo: repo,
		now:  time.Now,
	}
}

// Earnings reports completed-ride earnings over a rolling window ending
// now. "today" is anchored at local midnight; the other periods roll back
// a fixed number of days from the call time.
func (uc *DriverUsecase) Earnings(ctx context.Context, driverID uuid.UUID, period models.EarningsPeriod) (*models.DriverEarnings, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "drivers.Earnings", func() (*models.DriverEarnings, error) {
		now := uc.now()

		start, err := rollingWindowStart(now, period)
		if err != nil {
			return nil, err
		}

		window, err := uc.repo.EarningsBetween(ctx, driverID, start, now)
		if err != nil {
			return nil, err
		}

		earnings := &models.DriverEarnings{
			Period:        period,
			TotalEarnings: window.TotalEarnings,
			TotalRides:    window.RideCount,
			Currency:      uc.cfg.Pricing.Currency,
		}
		if window.RideCount > 0 {
			earnings.AverageEarningsPerRide = window.TotalEarnings / float64(window.RideCount)
		}

		return earnings, nil
	})
}

// Stats returns the all-time counters plus calendar-aligned breakdowns:
// today from midnight, this week from Monday, this month from the 1st.
func (uc *DriverUsecase) Stats(ctx context.Context, driverID uuid.UUID) (*models.DriverStats, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "drivers.Stats", func() (*models.DriverStats, error) {
		now := uc.now()

		lifetime, err := uc.repo.LifetimeCounters(ctx, driverID)
		if err != nil {
			return nil, err
		}

		avgRating, err := uc.repo.AverageDriverRating(ctx, driverID)
		if err != nil {
			return nil, err
		}

		today, err := uc.repo.EarningsBetween(ctx, driverID, startOfDay(now), now)
		if err != nil {
			return nil, err
		}
		week, err := uc.repo.EarningsBetween(ctx, driverID, startOfWeek(now), now)
		if err != nil {
			return nil, err
		}
		month, err := uc.repo.EarningsBetween(ctx, driverID, startOfMonth(now), now)
		if err != nil {
			return nil, err
		}

		return &models.DriverStats{
			TotalRides:     lifetime.TotalRides,
			CompletedRides: lifetime.CompletedRides,
			CancelledRides: lifetime.CancelledRides,
			TotalEarnings:  lifetime.TotalEarnings,
			AverageRating:  avgRating,

			TodayRides:        today.RideCount,
			TodayEarnings:     today.TotalEarnings,
			ThisWeekRides:     week.RideCount,
			ThisWeekEarnings:  week.TotalEarnings,
			ThisMonthRides:    month.RideCount,
			ThisMonthEarnings: month.TotalEarnings,
		}, nil
	})
}

// SetPresence puts the driver explicitly online or offline
func (uc *DriverUsecase) SetPresence(ctx context.Context, driverID uuid.UUID, online bool) (*models.DriverPresence, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "drivers.SetPresence", func() (*models.DriverPresence, error) {
		return uc.writePresence(ctx, driverID, online)
	})
}

// TogglePresence flips the current state. An expired entry reads as
// offline, so a driver whose presence lapsed toggles back online.
func (uc *DriverUsecase) TogglePresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "drivers.TogglePresence", func() (*models.DriverPresence, error) {
		current, err := uc.repo.GetPresence(ctx, driverID)
		if err != nil {
			return nil, err
		}
		return uc.writePresence(ctx, driverID, !current.IsOnline)
	})
}

func (uc *DriverUsecase) writePresence(ctx context.Context, driverID uuid.UUID, online bool) (*models.DriverPresence, error) {
	status := statusOffline
	if online {
		status = statusOnline
	}

	presence := &models.DriverPresence{
		DriverID:   driverID.String(),
		IsOnline:   online,
		Status:     status,
		LastActive: uc.now(),
	}

	if err := uc.repo.SetPresence(ctx, driverID, presence); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Driver presence updated",
		logger.String("driver_id", driverID.String()),
		logger.String("status", status))

	return presence, nil
}

// GetPresence returns the driver's current presence; expired entries read
// as offline.
func (uc *DriverUsecase) GetPresence(ctx context.Context, driverID uuid.UUID) (*models.DriverPresence, error) {
	return nrpkg.WithSegmentAndReturn(ctx, "drivers.GetPresence", func() (*models.DriverPresence, error) {
		return uc.repo.GetPresence(ctx, driverID)
	})
}

func rollingWindowStart(now time.Time, period models.EarningsPeriod) (time.Time, error) {
	switch period {
	case models.PeriodToday:
		return startOfDay(now), nil
	case models.PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case models.PeriodMonth:
		return now.AddDate(0, 0, -30), nil
	case models.PeriodYear:
		return now.AddDate(0, 0, -365), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown earnings period %q", errs.ErrValidation, period)
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// startOfWeek is the most recent Monday at midnight
func startOfWeek(now time.Time) time.Time {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	return startOfDay(now).AddDate(0, 0, -daysSinceMonday)
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
