package domain

import (
	"errors"
	"fmt"
)

// Outcome classes shared by resolvers, routers and the trip planner.
// Adapters wrap these with context; callers classify with errors.Is.
var (
	// The place or route does not exist according to the service's data.
	ErrNotFound = errors.New("not found")
	// Transport failure, timeout, malformed response or non-success status.
	ErrServiceError = errors.New("service error")
	// Travel mode (or other request field) outside the recognized set.
	ErrInvalidInput = errors.New("invalid input")
)

// Stage identifies which step of a trip query failed.
type Stage string

const (
	StageInput       Stage = "input"
	StageOrigin      Stage = "origin geocoding"
	StageDestination Stage = "destination geocoding"
	StageRouting     Stage = "routing"
)

// TripError annotates the first failure of a trip query with its stage.
type TripError struct {
	Stage Stage
	Err   error
}

func (e *TripError) Error() string {
	return fmt.Sprintf("plan trip: %s: %v", e.Stage, e.Err)
}

func (e *TripError) Unwrap() error { return e.Err }
