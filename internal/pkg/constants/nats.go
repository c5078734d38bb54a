package constants

// NATS subjects for ride lifecycle notifications. One event per state
// transition, delivered to both parties by downstream notification workers.
const (
	SubjectRideAccepted  = "ride.accepted"
	SubjectRideArrived   = "ride.arrived"
	SubjectRideStarted   = "ride.started"
	SubjectRideCompleted = "ride.completed"
	SubjectRideCancelled = "ride.cancelled"

	// Match telemetry
	SubjectMatchRejected = "match.rejected"
)
