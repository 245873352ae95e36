package handlers

import (
	"net/http"
	"strconv"
	"trip-route-planner/internal/api/dto"
	"trip-route-planner/internal/ports"

	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryHandler exposes the recorded trips read-only.
type HistoryHandler struct {
	Log ports.TripLog
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Log == nil {
		writeError(w, r, http.StatusNotFound, "trip history is disabled")
		return
	}

	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	records, err := h.Log.Recent(r.Context(), limit)
	if err != nil {
		zap.L().Warn("list trip history failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripRecordResponse, 0, len(records))}
	for _, rec := range records {
		res.Trips = append(res.Trips, dto.TripRecordResponse{
			ID:          rec.ID.String(),
			Origin:      rec.Origin,
			Destination: rec.Destination,
			Mode:        rec.Mode.String(),
			PlannedAt:   rec.PlannedAt,
			Report:      toTripResponse(rec.Report),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
