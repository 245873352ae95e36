package osm

import (
	"context"
	"fmt"
	"sync"
	"trip-route-planner/internal/domain"
)

type MockPlace struct {
	Query  string // exact domain.PlaceQuery.Text() value
	Coords domain.Coordinates
	Err    error
}

// MockPlaceResolver answers from a fixed table and counts calls.
// Unknown queries resolve to domain.ErrNotFound.
type MockPlaceResolver struct {
	mu      sync.Mutex
	m       map[string]MockPlace
	queries []string
}

func NewMockPlaceResolver(places []MockPlace) *MockPlaceResolver {
	m := make(map[string]MockPlace, len(places))
	for _, p := range places {
		m[p.Query] = p
	}
	return &MockPlaceResolver{m: m}
}

func (r *MockPlaceResolver) Resolve(ctx context.Context, query domain.PlaceQuery) (domain.Coordinates, error) {
	text := query.Text()

	r.mu.Lock()
	r.queries = append(r.queries, text)
	p, ok := r.m[text]
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %w", domain.ErrServiceError, err)
	}
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing place %q: %w", text, domain.ErrNotFound)
	}
	if p.Err != nil {
		return domain.Coordinates{}, p.Err
	}
	return p.Coords, nil
}

func (r *MockPlaceResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

// Queries returns the query texts seen so far, in call order.
func (r *MockPlaceResolver) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

// MockRouteProvider returns a route computed by Fn, or a fixed Result/Err.
type MockRouteProvider struct {
	Result domain.RouteResult
	Err    error
	Fn     func(origin, destination domain.Coordinates, mode domain.TravelMode) (domain.RouteResult, error)

	mu    sync.Mutex
	calls int
}

func (p *MockRouteProvider) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (domain.RouteResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.RouteResult{}, fmt.Errorf("%w: %w", domain.ErrServiceError, err)
	}
	if p.Fn != nil {
		return p.Fn(origin, destination, mode)
	}
	if p.Err != nil {
		return domain.RouteResult{}, p.Err
	}
	return p.Result, nil
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
