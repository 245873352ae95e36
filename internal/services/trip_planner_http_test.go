package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"trip-route-planner/internal/adapters/osm"
	"trip-route-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wires the planner to the real Nominatim/OSRM adapters backed by fake services.
func newHTTPPlanner(t *testing.T, geocode, route http.HandlerFunc) (*TripPlanner, *int32) {
	t.Helper()

	geoSrv := httptest.NewServer(geocode)
	t.Cleanup(geoSrv.Close)

	var routeHits int32
	routeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&routeHits, 1)
		route(w, r)
	}))
	t.Cleanup(routeSrv.Close)

	geocoder, err := osm.NewNominatimGeocoder(osm.ClientConfig{BaseURL: geoSrv.URL, UserAgent: "test", Timeout: time.Second})
	require.NoError(t, err)
	router, err := osm.NewOSRMRouter(osm.ClientConfig{BaseURL: routeSrv.URL, UserAgent: "test", Timeout: time.Second})
	require.NoError(t, err)

	planner, err := NewTripPlanner(geocoder, router, nil)
	require.NoError(t, err)
	return planner, &routeHits
}

func geocodeTable(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("q") {
	case "Santiago, Chile":
		_, _ = w.Write([]byte(`[{"lat": "-33.45", "lon": "-70.66"}]`))
	case "Montevideo, Uruguay":
		_, _ = w.Write([]byte(`[{"lat": "-34.90", "lon": "-56.16"}]`))
	default:
		_, _ = w.Write([]byte(`[]`))
	}
}

func TestTripPlannerOverHTTP(t *testing.T) {
	planner, routeHits := newHTTPPlanner(t, geocodeTable, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-70.66,-33.45;-56.16,-34.9", r.URL.Path)
		_, _ = w.Write([]byte(`{"code": "Ok", "routes": [{"distance": 1200000, "duration": 43200,
			"legs": [{"steps": [{"name": "Ruta 68", "maneuver": {}}, {"maneuver": {}}]}]}]}`))
	})

	report, err := planner.Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Driving))
	require.NoError(t, err)

	assert.InDelta(t, 1200.0, report.DistanceKm, 1e-9)
	assert.InDelta(t, 745.65, report.DistanceMiles, 0.005)
	assert.Equal(t, "12:00:00", report.DurationFormatted)
	assert.Equal(t, []string{"Ruta 68", osm.NoInstructionText}, report.Instructions)
	assert.EqualValues(t, 1, atomic.LoadInt32(routeHits))
}

func TestTripPlannerOverHTTPOriginNotFound(t *testing.T) {
	planner, routeHits := newHTTPPlanner(t, geocodeTable, func(w http.ResponseWriter, r *http.Request) {
		t.Error("routing service must not be called")
	})

	_, err := planner.Plan(context.Background(), tripRequest("Atlantis", "Montevideo", domain.Driving))

	var tripErr *domain.TripError
	require.ErrorAs(t, err, &tripErr)
	assert.Equal(t, domain.StageOrigin, tripErr.Stage)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, atomic.LoadInt32(routeHits))
}

func TestTripPlannerOverHTTPRoutingStatus(t *testing.T) {
	planner, _ := newHTTPPlanner(t, geocodeTable, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "Impossible route between points"}`))
	})

	_, err := planner.Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Walking))

	var tripErr *domain.TripError
	require.ErrorAs(t, err, &tripErr)
	assert.Equal(t, domain.StageRouting, tripErr.Stage)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
