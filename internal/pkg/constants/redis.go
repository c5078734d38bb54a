package constants

// Redis key formats
const (
	// Driver presence
	KeyDriverPresence   = "driver:presence:%s" // Format: driver:presence:{driver_id}
	KeyAvailableDrivers = "drivers:available"  // Set of online driver IDs

	// Match telemetry
	KeyRideRejects = "ride:rejects:%s" // Format: ride:rejects:{ride_id}, hash of driver_id -> count
)

// Redis hash fields
const (
	FieldStatus     = "status"
	FieldLastActive = "last_active"
)
