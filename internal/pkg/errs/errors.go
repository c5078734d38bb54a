// Package errs defines the error kinds the dispatch core reports. Every
// failure surfaced by a usecase wraps exactly one of these sentinels so
// callers can branch with errors.Is without string matching.
package errs

import "errors"

var (
	// ErrRideNotFound means the ride id does not exist in the store.
	ErrRideNotFound = errors.New("ride not found")

	// ErrRatingNotFound means no rating record exists for the ride.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrInvalidTransition means the requested status change is not in the
	// lifecycle table, including any transition out of a terminal state.
	ErrInvalidTransition = errors.New("invalid ride status transition")

	// ErrRideAlreadyClaimed means another driver won the claim race.
	ErrRideAlreadyClaimed = errors.New("ride already claimed by another driver")

	// ErrForbidden means the actor lacks authority for the operation.
	ErrForbidden = errors.New("actor not authorized for this operation")

	// ErrStoreUnavailable means the underlying store timed out or was
	// unreachable. This is the only kind safe to retry blindly.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrValidation means the request payload is malformed (rating outside
	// 1-5, unknown period token, missing coordinates).
	ErrValidation = errors.New("validation failed")
)

// IsRetryable reports whether the caller may retry the whole operation
// without modification.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
