package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"trip-route-planner/internal/domain"
)

// RenderReport writes the human-readable trip block.
func RenderReport(w io.Writer, report domain.TripReport) {
	fmt.Fprintf(w, "\nDistance: %.2f km (%.2f miles)\n", report.DistanceKm, report.DistanceMiles)
	fmt.Fprintf(w, "Approx. duration: %s\n\n", report.DurationFormatted)
	fmt.Fprintln(w, "Directions:")
	for i, step := range report.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	fmt.Fprint(w, "\n"+strings.Repeat("-", 40)+"\n\n")
}

type reportJSON struct {
	DistanceKm    float64  `json:"distance_km"`
	DistanceMiles float64  `json:"distance_miles"`
	Duration      string   `json:"duration"`
	Instructions  []string `json:"instructions"`
}

// RenderReportJSON writes the report as an indented JSON object.
func RenderReportJSON(w io.Writer, report domain.TripReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reportJSON{
		DistanceKm:    report.DistanceKm,
		DistanceMiles: report.DistanceMiles,
		Duration:      report.DurationFormatted,
		Instructions:  report.Instructions,
	})
}
