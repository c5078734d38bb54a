package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the lifecycle status of a ride
type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusArrived   RideStatus = "arrived"
	RideStatusStarted   RideStatus = "started"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// rideTransitions is the closed transition table for the ride lifecycle.
// A (source, target) pair absent from this table is illegal, no exceptions.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusRequested: {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted:  {RideStatusArrived, RideStatusCancelled},
	RideStatusArrived:   {RideStatusStarted, RideStatusCancelled},
	RideStatusStarted:   {RideStatusCompleted},
	RideStatusCompleted: {},
	RideStatusCancelled: {},
}

// CanTransitionTo reports whether the lifecycle permits moving from s to target.
func (s RideStatus) CanTransitionTo(target RideStatus) bool {
	for _, allowed := range rideTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// ParseRideStatus validates a raw status string against the closed enum.
func ParseRideStatus(raw string) (RideStatus, bool) {
	switch RideStatus(raw) {
	case RideStatusRequested, RideStatusAccepted, RideStatusArrived,
		RideStatusStarted, RideStatusCompleted, RideStatusCancelled:
		return RideStatus(raw), true
	}
	return "", false
}

// RideType represents the service class requested by the passenger
type RideType string

const (
	RideTypeStandard RideType = "standard"
	RideTypeComfort  RideType = "comfort"
	RideTypePremium  RideType = "premium"
)

// Ride represents a single passenger-to-driver transportation transaction.
// Pricing and geometry are frozen at creation time; the lifecycle only ever
// touches status, driver assignment, timestamps and the cancellation reason.
type Ride struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Status      RideStatus `json:"status" db:"status"`
	PassengerID uuid.UUID  `json:"passenger_id" db:"passenger_id"`
	DriverID    *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`

	Pickup      Location `json:"pickup"`
	Destination Location `json:"destination"`

	RideType    RideType `json:"ride_type" db:"ride_type"`
	Fare        float64  `json:"fare" db:"fare"`
	DistanceKm  float64  `json:"distance_km" db:"distance_km"`
	DurationMin int      `json:"duration_min" db:"duration_min"`
	Notes       *string  `json:"notes,omitempty" db:"notes"`

	RequestedAt        time.Time  `json:"requested_at" db:"requested_at"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty" db:"accepted_at"`
	ArrivedAt          *time.Time `json:"arrived_at,omitempty" db:"arrived_at"`
	StartedAt          *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CancellationReason *string    `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
}

// RideRequest is the payload for creating a new ride request
type RideRequest struct {
	Pickup      Location `json:"pickup"`
	Destination Location `json:"destination"`
	RideType    RideType `json:"ride_type"`
	Notes       *string  `json:"notes,omitempty"`
}

// FareEstimate is the frozen pricing snapshot produced once at creation time
type FareEstimate struct {
	DistanceKm  float64            `json:"distance_km"`
	DurationMin int                `json:"duration_min"`
	Fare        float64            `json:"fare"`
	Breakdown   map[string]float64 `json:"breakdown"`
}

// RideHistory is a paged slice of a user's past rides
type RideHistory struct {
	Rides []*Ride `json:"rides"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// AvailableRide is one entry of the claimable ride pool shown to drivers.
// PickupGeohash lets a proximity layer group entries without re-resolving
// coordinates; this view itself applies no geographic filtering.
type AvailableRide struct {
	ID                 uuid.UUID `json:"id"`
	PickupAddress      string    `json:"pickup_address"`
	DestinationAddress string    `json:"destination_address"`
	PickupLatitude     float64   `json:"pickup_latitude"`
	PickupLongitude    float64   `json:"pickup_longitude"`
	PickupGeohash      string    `json:"pickup_geohash"`
	RideType           RideType  `json:"ride_type"`
	Fare               float64   `json:"fare"`
	DistanceKm         float64   `json:"distance_km"`
	DurationMin        int       `json:"duration_min"`
	RequestedAt        time.Time `json:"requested_at"`
}
