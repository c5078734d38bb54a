package gateway

import (
	"context"
	"encoding/json"

	"github.com/twende-app/twende/internal/pkg/constants"
	"github.com/twende-app/twende/internal/pkg/models"
	natspkg "github.com/twende-app/twende/internal/pkg/nats"
)

// rideEvent is the wire payload for ride lifecycle notifications.
type rideEvent struct {
	RideID      string  `json:"ride_id"`
	Status      string  `json:"status"`
	PassengerID string  `json:"passenger_id"`
	DriverID    *string `json:"driver_id,omitempty"`
	Fare        float64 `json:"fare"`
	RideType    string  `json:"ride_type"`
}

// RideGW publishes ride lifecycle events to NATS.
type RideGW struct {
	natsClient *natspkg.Client
}

// NewRideGW creates a new ride gateway
func NewRideGW(client *natspkg.Client) *RideGW {
	return &RideGW{natsClient: client}
}

func (g *RideGW) publish(subject string, ride *models.Ride) error {
	event := rideEvent{
		RideID:      ride.ID.String(),
		Status:      string(ride.Status),
		PassengerID: ride.PassengerID.String(),
		Fare:        ride.Fare,
		RideType:    string(ride.RideType),
	}
	if ride.DriverID != nil {
		driverID := ride.DriverID.String()
		event.DriverID = &driverID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(subject, data)
}

// PublishRideAccepted publishes a ride accepted event
func (g *RideGW) PublishRideAccepted(ctx context.Context, ride *models.Ride) error {
	return g.publish(constants.SubjectRideAccepted, ride)
}

// PublishRideArrived publishes a driver arrived event
func (g *RideGW) PublishRideArrived(ctx context.Context, ride *models.Ride) error {
	return g.publish(constants.SubjectRideArrived, ride)
}

// PublishRideStarted publishes a trip started event
func (g *RideGW) PublishRideStarted(ctx context.Context, ride *models.Ride) error {
	return g.publish(constants.SubjectRideStarted, ride)
}

// PublishRideCompleted publishes a ride completed event
func (g *RideGW) PublishRideCompleted(ctx context.Context, ride *models.Ride) error {
	return g.publish(constants.SubjectRideCompleted, ride)
}

// PublishRideCancelled publishes a ride cancelled event
func (g *RideGW) PublishRideCancelled(ctx context.Context, ride *models.Ride) error {
	return g.publish(constants.SubjectRideCancelled, ride)
}
