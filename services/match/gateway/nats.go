package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/twende-app/twende/internal/pkg/constants"
	natspkg "github.com/twende-app/twende/internal/pkg/nats"
)

// matchRejectedEvent is the wire payload for reject telemetry.
type matchRejectedEvent struct {
	RideID     string    `json:"ride_id"`
	DriverID   string    `json:"driver_id"`
	RejectedAt time.Time `json:"rejected_at"`
}

// MatchGW publishes match telemetry events to NATS.
type MatchGW struct {
	natsClient *natspkg.Client
}

// NewMatchGW creates a new match gateway
func NewMatchGW(client *natspkg.Client) *MatchGW {
	return &MatchGW{natsClient: client}
}

// PublishMatchRejected publishes a match rejected event
func (g *MatchGW) PublishMatchRejected(ctx context.Context, rideID, driverID uuid.UUID) error {
	data, err := json.Marshal(matchRejectedEvent{
		RideID:     rideID.String(),
		DriverID:   driverID.String(),
		RejectedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectMatchRejected, data)
}
