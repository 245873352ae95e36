package ports

import (
	"context"
	"trip-route-planner/internal/domain"
)

// Port: append-only history of completed trips.
// Records are never consulted when answering a trip query.
type TripLog interface {
	Record(ctx context.Context, rec domain.TripRecord) error
	// Return the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.TripRecord, error)
}
