package models

// Role identifies which side of a ride an actor is on
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// ParseRole validates a raw role string
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RolePassenger, RoleDriver:
		return Role(raw), true
	}
	return "", false
}
