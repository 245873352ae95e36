package history

import (
	"encoding/json"
	"fmt"
	"trip-route-planner/internal/domain"

	"github.com/google/uuid"
)

// row is the flattened trip_history representation shared by both dialects.
type row struct {
	ID            string
	Origin        string
	Destination   string
	Mode          string
	DistanceKm    float64
	DistanceMiles float64
	Duration      string
	Instructions  string
}

func toRow(rec domain.TripRecord) (row, error) {
	if rec.ID == uuid.Nil {
		return row{}, fmt.Errorf("trip record has no id")
	}

	instructions := rec.Report.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	b, err := json.Marshal(instructions)
	if err != nil {
		return row{}, fmt.Errorf("encode instructions: %w", err)
	}

	return row{
		ID:            rec.ID.String(),
		Origin:        rec.Origin,
		Destination:   rec.Destination,
		Mode:          rec.Mode.String(),
		DistanceKm:    rec.Report.DistanceKm,
		DistanceMiles: rec.Report.DistanceMiles,
		Duration:      rec.Report.DurationFormatted,
		Instructions:  string(b),
	}, nil
}

func (r row) toRecord() (domain.TripRecord, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("parse id %q: %w", r.ID, err)
	}

	mode, err := domain.ParseTravelMode(r.Mode)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("trip %s: %w", r.ID, err)
	}

	var instructions []string
	if err := json.Unmarshal([]byte(r.Instructions), &instructions); err != nil {
		return domain.TripRecord{}, fmt.Errorf("trip %s: decode instructions: %w", r.ID, err)
	}

	return domain.TripRecord{
		ID:          id,
		Origin:      r.Origin,
		Destination: r.Destination,
		Mode:        mode,
		Report: domain.TripReport{
			DistanceKm:        r.DistanceKm,
			DistanceMiles:     r.DistanceMiles,
			DurationFormatted: r.Duration,
			Instructions:      instructions,
		},
	}, nil
}
