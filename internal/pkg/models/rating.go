package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating holds the mutual post-ride ratings for one completed ride.
// Either party may rate independently; both submissions merge into the
// same record keyed by ride ID.
type Rating struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RideID      uuid.UUID `json:"ride_id" db:"ride_id"`
	PassengerID uuid.UUID `json:"passenger_id" db:"passenger_id"`
	DriverID    uuid.UUID `json:"driver_id" db:"driver_id"`

	// DriverRating is the passenger's 1-5 score of the driver.
	DriverRating  *int    `json:"driver_rating,omitempty" db:"driver_rating"`
	DriverComment *string `json:"driver_comment,omitempty" db:"driver_comment"`

	// PassengerRating is the driver's 1-5 score of the passenger.
	PassengerRating  *int    `json:"passenger_rating,omitempty" db:"passenger_rating"`
	PassengerComment *string `json:"passenger_comment,omitempty" db:"passenger_comment"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RatingRequest is one party's rating submission for a completed ride
type RatingRequest struct {
	RideID  uuid.UUID `json:"ride_id"`
	RaterID uuid.UUID `json:"-"`
	Role    Role      `json:"-"`
	Value   int       `json:"value"`
	Comment *string   `json:"comment,omitempty"`
}
