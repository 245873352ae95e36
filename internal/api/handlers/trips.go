package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"trip-route-planner/internal/api/dto"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/services"

	"go.uber.org/zap"
)

type Planner interface {
	Plan(ctx context.Context, req services.TripRequest) (domain.TripReport, error)
}

// Hints are the server-wide defaults appended to place queries.
type Hints struct {
	Origin      string
	Destination string
}

type TripHandler struct {
	Planner Planner
	Hints   Hints
}

// Plan answers POST /trips with a single planned trip.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	mode := domain.Driving
	if s := strings.TrimSpace(req.Mode); s != "" {
		m, err := domain.TravelModeFromSelector(s)
		if err != nil {
			m, err = domain.ParseTravelMode(s)
		}
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "mode must be driving, walking or cycling")
			return
		}
		mode = m
	}

	originHint := h.Hints.Origin
	if req.OriginHint != nil {
		originHint = *req.OriginHint
	}
	destinationHint := h.Hints.Destination
	if req.DestinationHint != nil {
		destinationHint = *req.DestinationHint
	}

	report, err := h.Planner.Plan(r.Context(), services.TripRequest{
		Origin:      domain.PlaceQuery{RawText: req.Origin, Hint: originHint},
		Destination: domain.PlaceQuery{RawText: req.Destination, Hint: destinationHint},
		Mode:        mode,
	})
	if err != nil {
		status := statusFor(r.Context(), err)
		if status >= http.StatusInternalServerError {
			zap.L().Warn("plan trip failed", zap.Error(err))
		}
		writeError(w, r, status, domain.FailureMessage(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(report))
}

// statusFor maps a planner error to an HTTP status. An expired request context
// wins over the ServiceError the adapters wrap it in; an upstream per-call
// timeout stays a 502.
func statusFor(ctx context.Context, err error) int {
	switch {
	case ctx.Err() != nil:
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrServiceError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
