package domain

// Normalized output of a single routing call.
// Distance and duration are exactly what the routing service reported (meters, seconds).
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Instructions    []string
}

// Represents the answer presented for one trip query.
// A TripReport is derived deterministically from a RouteResult and is
// never mutated after construction.
type TripReport struct {
	DistanceKm        float64
	DistanceMiles     float64
	DurationFormatted string
	Instructions      []string
}
