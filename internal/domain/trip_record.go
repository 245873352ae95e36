package domain

import (
	"time"

	"github.com/google/uuid"
)

// A completed trip as written to the trip history log.
type TripRecord struct {
	ID          uuid.UUID
	Origin      string
	Destination string
	Mode        TravelMode
	Report      TripReport
	PlannedAt   time.Time
}
