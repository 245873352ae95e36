package api

import (
	"net/http"
	"trip-route-planner/internal/api/handlers"
	"trip-route-planner/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// history may be nil, in which case /trips/history answers 404.
func NewRouter(planner handlers.Planner, history ports.TripLog, hints handlers.Hints) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Planner: planner, Hints: hints}
	historyHandler := &handlers.HistoryHandler{Log: history}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.Plan)
	mux.HandleFunc("/trips/history", historyHandler.List)

	return loggingMiddleware(mux)
}
