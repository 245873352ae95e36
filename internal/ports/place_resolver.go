package ports

import (
	"context"
	"trip-route-planner/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type PlaceResolver interface {
	// Return the best-ranked coordinates for the query.
	// Errors wrap domain.ErrNotFound or domain.ErrServiceError.
	Resolve(ctx context.Context, query domain.PlaceQuery) (domain.Coordinates, error)
}
