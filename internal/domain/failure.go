package domain

import "errors"

// FailureMessage turns a planner error into the stage-specific line shown to
// users of the CLI and the HTTP API.
func FailureMessage(err error) string {
	var stage Stage
	var tripErr *TripError
	if errors.As(err, &tripErr) {
		stage = tripErr.Stage
	}

	var msg string
	switch stage {
	case StageOrigin:
		msg = "Could not geocode the origin city"
	case StageDestination:
		msg = "Could not geocode the destination city"
	case StageRouting:
		msg = "Could not get a route between those cities"
	case StageInput:
		msg = "Invalid trip request"
	default:
		msg = "Trip planning failed"
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return msg + " (not found)."
	case errors.Is(err, ErrServiceError):
		return msg + " (service unavailable, try again)."
	default:
		return msg + "."
	}
}
