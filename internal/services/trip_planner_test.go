package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"
	"trip-route-planner/internal/adapters/osm"
	"trip-route-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	santiago   = domain.Coordinates{Lat: -33.45, Lon: -70.66}
	montevideo = domain.Coordinates{Lat: -34.90, Lon: -56.16}
)

func tripRequest(origin, destination string, mode domain.TravelMode) TripRequest {
	return TripRequest{
		Origin:      domain.PlaceQuery{RawText: origin, Hint: "Chile"},
		Destination: domain.PlaceQuery{RawText: destination, Hint: "Uruguay"},
		Mode:        mode,
	}
}

func newPlanner(t *testing.T, resolver *osm.MockPlaceResolver, router *osm.MockRouteProvider) *TripPlanner {
	t.Helper()
	p, err := NewTripPlanner(resolver, router, nil)
	require.NoError(t, err)
	return p
}

func defaultResolver() *osm.MockPlaceResolver {
	return osm.NewMockPlaceResolver([]osm.MockPlace{
		{Query: "Santiago, Chile", Coords: santiago},
		{Query: "Montevideo, Uruguay", Coords: montevideo},
	})
}

func TestTripPlannerEndToEnd(t *testing.T) {
	resolver := defaultResolver()
	router := &osm.MockRouteProvider{
		Fn: func(origin, destination domain.Coordinates, mode domain.TravelMode) (domain.RouteResult, error) {
			assert.Equal(t, santiago, origin)
			assert.Equal(t, montevideo, destination)
			assert.Equal(t, domain.Driving, mode)
			return domain.RouteResult{
				DistanceMeters:  1200000,
				DurationSeconds: 43200,
				Instructions:    []string{"Head east", "Ruta 5", "Arrive"},
			}, nil
		},
	}

	report, err := newPlanner(t, resolver, router).Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Driving))
	require.NoError(t, err)

	assert.InDelta(t, 1200.00, report.DistanceKm, 1e-9)
	assert.InDelta(t, 745.65, report.DistanceMiles, 0.005)
	assert.Equal(t, "12:00:00", report.DurationFormatted)
	assert.Equal(t, []string{"Head east", "Ruta 5", "Arrive"}, report.Instructions)

	assert.ElementsMatch(t, []string{"Santiago, Chile", "Montevideo, Uruguay"}, resolver.Queries())
	assert.Equal(t, 1, router.Calls())
}

func TestTripPlannerGeocodeFailureTagsSide(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		destination string
		wantStage   domain.Stage
	}{
		{name: "origin missing", origin: "Nowhere", destination: "Montevideo", wantStage: domain.StageOrigin},
		{name: "destination missing", origin: "Santiago", destination: "Nowhere", wantStage: domain.StageDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := &osm.MockRouteProvider{}

			_, err := newPlanner(t, defaultResolver(), router).Plan(context.Background(), tripRequest(tt.origin, tt.destination, domain.Walking))

			var tripErr *domain.TripError
			require.ErrorAs(t, err, &tripErr)
			assert.Equal(t, tt.wantStage, tripErr.Stage)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Zero(t, router.Calls())
		})
	}
}

// delayedResolver fails every query, answering origin queries after originDelay.
type delayedResolver struct {
	originText  string
	originDelay time.Duration
}

func (r delayedResolver) Resolve(ctx context.Context, query domain.PlaceQuery) (domain.Coordinates, error) {
	if query.Text() == r.originText {
		select {
		case <-time.After(r.originDelay):
		case <-ctx.Done():
			return domain.Coordinates{}, fmt.Errorf("%w: %w", domain.ErrServiceError, ctx.Err())
		}
	}
	return domain.Coordinates{}, fmt.Errorf("missing %q: %w", query.Text(), domain.ErrNotFound)
}

func TestTripPlannerBothPlacesMissingReportsOrigin(t *testing.T) {
	for _, delay := range []time.Duration{0, 20 * time.Millisecond} {
		t.Run(delay.String(), func(t *testing.T) {
			router := &osm.MockRouteProvider{}
			planner, err := NewTripPlanner(delayedResolver{originText: "Nowhere, Chile", originDelay: delay}, router, nil)
			require.NoError(t, err)

			_, err = planner.Plan(context.Background(), tripRequest("Nowhere", "Nowhere", domain.Driving))

			var tripErr *domain.TripError
			require.ErrorAs(t, err, &tripErr)
			assert.Equal(t, domain.StageOrigin, tripErr.Stage)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Zero(t, router.Calls())
		})
	}
}

func TestTripPlannerGeocodeServiceError(t *testing.T) {
	resolver := osm.NewMockPlaceResolver([]osm.MockPlace{
		{Query: "Santiago, Chile", Coords: santiago},
		{Query: "Montevideo, Uruguay", Err: fmt.Errorf("resolve: %w: timeout", domain.ErrServiceError)},
	})
	router := &osm.MockRouteProvider{}

	_, err := newPlanner(t, resolver, router).Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Cycling))

	var tripErr *domain.TripError
	require.ErrorAs(t, err, &tripErr)
	assert.Equal(t, domain.StageDestination, tripErr.Stage)
	assert.ErrorIs(t, err, domain.ErrServiceError)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, router.Calls())
}

func TestTripPlannerRoutingFailure(t *testing.T) {
	for _, cause := range []error{domain.ErrNotFound, domain.ErrServiceError} {
		t.Run(cause.Error(), func(t *testing.T) {
			router := &osm.MockRouteProvider{Err: fmt.Errorf("route driving: %w", cause)}

			report, err := newPlanner(t, defaultResolver(), router).Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Driving))

			var tripErr *domain.TripError
			require.ErrorAs(t, err, &tripErr)
			assert.Equal(t, domain.StageRouting, tripErr.Stage)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, domain.TripReport{}, report)
			assert.Equal(t, 1, router.Calls())
		})
	}
}

func TestTripPlannerRejectsInvalidModeBeforeNetwork(t *testing.T) {
	resolver := defaultResolver()
	router := &osm.MockRouteProvider{}

	_, err := newPlanner(t, resolver, router).Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.ModeUnknown))

	var tripErr *domain.TripError
	require.ErrorAs(t, err, &tripErr)
	assert.Equal(t, domain.StageInput, tripErr.Stage)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, resolver.Calls())
	assert.Zero(t, router.Calls())
}

func TestTripPlannerCancelledContext(t *testing.T) {
	router := &osm.MockRouteProvider{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPlanner(t, defaultResolver(), router).Plan(ctx, tripRequest("Santiago", "Montevideo", domain.Driving))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, router.Calls())
}

func TestTripPlannerParallelMatchesSequential(t *testing.T) {
	cities := []string{"Arica", "Iquique", "Antofagasta", "Copiapo", "La Serena", "Valparaiso", "Talca", "Temuco"}

	places := make([]osm.MockPlace, 0, 2*len(cities))
	for i, c := range cities {
		places = append(places,
			osm.MockPlace{Query: c + ", Chile", Coords: domain.Coordinates{Lat: -18 - float64(i), Lon: -70}},
			osm.MockPlace{Query: c + ", Uruguay", Coords: domain.Coordinates{Lat: -30 - float64(i), Lon: -56}},
		)
	}

	router := &osm.MockRouteProvider{
		Fn: func(origin, destination domain.Coordinates, mode domain.TravelMode) (domain.RouteResult, error) {
			d := math.Abs(origin.Lat-destination.Lat)*111000 + math.Abs(origin.Lon-destination.Lon)*90000
			return domain.RouteResult{
				DistanceMeters:  d,
				DurationSeconds: d / 25,
				Instructions:    []string{fmt.Sprintf("from %.0f", origin.Lat), fmt.Sprintf("to %.0f", destination.Lat)},
			}, nil
		},
	}
	planner := newPlanner(t, osm.NewMockPlaceResolver(places), router)

	reqs := make([]TripRequest, 0, len(cities))
	for i, c := range cities {
		reqs = append(reqs, tripRequest(c, cities[len(cities)-1-i], domain.Driving))
	}

	sequential := make([]domain.TripReport, len(reqs))
	for i, req := range reqs {
		r, err := planner.Plan(context.Background(), req)
		require.NoError(t, err)
		sequential[i] = r
	}

	parallel := make([]domain.TripReport, len(reqs))
	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parallel[i], errs[i] = planner.Plan(context.Background(), req)
		}()
	}
	wg.Wait()

	require.NoError(t, errors.Join(errs...))
	assert.Equal(t, sequential, parallel)
}

type recordingLog struct {
	mu      sync.Mutex
	records []domain.TripRecord
	err     error
}

func (l *recordingLog) Record(ctx context.Context, rec domain.TripRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.records = append(l.records, rec)
	return nil
}

func (l *recordingLog) Recent(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records, nil
}

func TestTripPlannerRecordsHistory(t *testing.T) {
	history := &recordingLog{}
	router := &osm.MockRouteProvider{Result: domain.RouteResult{DistanceMeters: 5000, DurationSeconds: 600}}

	planner, err := NewTripPlanner(defaultResolver(), router, history)
	require.NoError(t, err)

	report, err := planner.Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Walking))
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, "Santiago, Chile", rec.Origin)
	assert.Equal(t, "Montevideo, Uruguay", rec.Destination)
	assert.Equal(t, domain.Walking, rec.Mode)
	assert.Equal(t, report, rec.Report)
	assert.False(t, rec.PlannedAt.IsZero())
}

func TestTripPlannerHistoryFailureDoesNotFailPlan(t *testing.T) {
	history := &recordingLog{err: errors.New("disk full")}
	router := &osm.MockRouteProvider{Result: domain.RouteResult{DistanceMeters: 5000, DurationSeconds: 600}}

	planner, err := NewTripPlanner(defaultResolver(), router, history)
	require.NoError(t, err)

	report, err := planner.Plan(context.Background(), tripRequest("Santiago", "Montevideo", domain.Walking))
	require.NoError(t, err)
	assert.Equal(t, "00:10:00", report.DurationFormatted)
}

func TestNewTripPlannerRequiresCollaborators(t *testing.T) {
	_, err := NewTripPlanner(nil, &osm.MockRouteProvider{}, nil)
	require.Error(t, err)

	_, err = NewTripPlanner(defaultResolver(), nil, nil)
	require.Error(t, err)
}
