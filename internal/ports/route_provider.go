package ports

import (
	"context"
	"trip-route-planner/internal/domain"
)

// Contract for computing a route between two coordinates.
type RouteProvider interface {
	// Return distance, duration and turn-by-turn instructions from origin to destination.
	// Errors wrap domain.ErrNotFound, domain.ErrServiceError or domain.ErrInvalidInput.
	Route(ctx context.Context, origin, destination domain.Coordinates, mode domain.TravelMode) (domain.RouteResult, error)
}
