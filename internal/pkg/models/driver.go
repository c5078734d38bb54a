package models

import "time"

// EarningsPeriod selects a rolling window for the earnings report
type EarningsPeriod string

const (
	PeriodToday EarningsPeriod = "today"
	PeriodWeek  EarningsPeriod = "week"
	PeriodMonth EarningsPeriod = "month"
	PeriodYear  EarningsPeriod = "year"
)

// ParseEarningsPeriod validates a raw period token
func ParseEarningsPeriod(raw string) (EarningsPeriod, bool) {
	switch EarningsPeriod(raw) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return EarningsPeriod(raw), true
	}
	return "", false
}

// DriverEarnings is the rolling-window earnings report for a driver
type DriverEarnings struct {
	Period                 EarningsPeriod `json:"period"`
	TotalEarnings          float64        `json:"total_earnings"`
	TotalRides             int            `json:"total_rides"`
	AverageEarningsPerRide float64        `json:"average_earnings_per_ride"`
	Currency               string         `json:"currency"`
}

// DriverStats is the full performance snapshot for a driver, recomputed
// from the ride and rating stores on every call.
//
// The today/this-week/this-month breakdowns here are calendar-aligned
// (midnight, Monday, 1st of month) while DriverEarnings uses rolling
// windows; the two call paths intentionally disagree on anchoring.
type DriverStats struct {
	TotalRides     int     `json:"total_rides"`
	CompletedRides int     `json:"completed_rides"`
	CancelledRides int     `json:"cancelled_rides"`
	TotalEarnings  float64 `json:"total_earnings"`
	AverageRating  float64 `json:"average_rating"`

	TodayRides        int     `json:"today_rides"`
	TodayEarnings     float64 `json:"today_earnings"`
	ThisWeekRides     int     `json:"this_week_rides"`
	ThisWeekEarnings  float64 `json:"this_week_earnings"`
	ThisMonthRides    int     `json:"this_month_rides"`
	ThisMonthEarnings float64 `json:"this_month_earnings"`
}

// EarningsWindow is one aggregation window over completed rides
type EarningsWindow struct {
	TotalEarnings float64 `db:"total_earnings"`
	RideCount     int     `db:"ride_count"`
}

// DriverLifetime holds the all-time counters behind DriverStats
type DriverLifetime struct {
	TotalRides     int     `db:"total_rides"`
	CompletedRides int     `db:"completed_rides"`
	CancelledRides int     `db:"cancelled_rides"`
	TotalEarnings  float64 `db:"total_earnings"`
}

// DriverPresence is the driver's online/offline state kept in Redis
type DriverPresence struct {
	DriverID   string    `json:"driver_id"`
	IsOnline   bool      `json:"is_online"`
	Status     string    `json:"status"`
	LastActive time.Time `json:"last_active"`
}
