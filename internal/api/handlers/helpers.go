package handlers

import (
	"encoding/json"
	"net/http"
	"trip-route-planner/internal/api/dto"
	"trip-route-planner/internal/domain"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func toTripResponse(report domain.TripReport) dto.TripResponse {
	instructions := report.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	return dto.TripResponse{
		DistanceKm:    report.DistanceKm,
		DistanceMiles: report.DistanceMiles,
		Duration:      report.DurationFormatted,
		Instructions:  instructions,
	}
}
