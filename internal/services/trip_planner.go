package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/platform/obs"
	"trip-route-planner/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const milesPerKm = 0.621371

// TripRequest is one trip query. Each place carries its own disambiguation hint;
// choosing the hints is the caller's policy.
type TripRequest struct {
	Origin      domain.PlaceQuery
	Destination domain.PlaceQuery
	Mode        domain.TravelMode
}

// TripPlanner composes two place resolutions and one routing call into a TripReport.
//
// It keeps no state between calls, so a single planner may serve any number of
// concurrent queries.
type TripPlanner struct {
	resolver ports.PlaceResolver
	router   ports.RouteProvider
	history  ports.TripLog
	now      func() time.Time
}

// NewTripPlanner wires the planner. history may be nil to disable the trip log.
func NewTripPlanner(resolver ports.PlaceResolver, router ports.RouteProvider, history ports.TripLog) (*TripPlanner, error) {
	if resolver == nil {
		return nil, errors.New("new trip planner: resolver must be non-nil")
	}
	if router == nil {
		return nil, errors.New("new trip planner: router must be non-nil")
	}

	return &TripPlanner{
		resolver: resolver,
		router:   router,
		history:  history,
		now:      time.Now,
	}, nil
}

// Plan resolves both places, routes between them and builds the report.
//
// Failures are returned as *domain.TripError naming the failed stage. When both
// places fail, the origin is reported.
// No routing call is made unless both places resolved.
func (p *TripPlanner) Plan(ctx context.Context, req TripRequest) (_ domain.TripReport, err error) {
	ctx = obs.WithRequestID(ctx)
	defer obs.Time(ctx, "trip.Plan")(&err)

	if !req.Mode.Valid() {
		return domain.TripReport{}, &domain.TripError{
			Stage: domain.StageInput,
			Err:   fmt.Errorf("travel mode %v: %w", req.Mode, domain.ErrInvalidInput),
		}
	}

	origin, destination, err := p.resolvePlaces(ctx, req)
	if err != nil {
		return domain.TripReport{}, err
	}

	route, err := p.router.Route(ctx, origin, destination, req.Mode)
	if err != nil {
		return domain.TripReport{}, &domain.TripError{Stage: domain.StageRouting, Err: err}
	}

	report := BuildReport(route)
	p.record(ctx, req, report)

	return report, nil
}

// resolvePlaces geocodes both ends concurrently and waits for both. When both
// fail the origin error wins, so the reported stage matches a sequential run.
func (p *TripPlanner) resolvePlaces(ctx context.Context, req TripRequest) (origin, destination domain.Coordinates, err error) {
	var (
		g                    errgroup.Group
		originErr, destinErr error
	)

	g.Go(func() error {
		origin, originErr = p.resolver.Resolve(ctx, req.Origin)
		return nil
	})

	g.Go(func() error {
		destination, destinErr = p.resolver.Resolve(ctx, req.Destination)
		return nil
	})

	_ = g.Wait()

	if originErr != nil {
		return domain.Coordinates{}, domain.Coordinates{}, &domain.TripError{Stage: domain.StageOrigin, Err: originErr}
	}
	if destinErr != nil {
		return domain.Coordinates{}, domain.Coordinates{}, &domain.TripError{Stage: domain.StageDestination, Err: destinErr}
	}
	return origin, destination, nil
}

// BuildReport converts a route into display units.
func BuildReport(route domain.RouteResult) domain.TripReport {
	km := route.DistanceMeters / 1000

	instructions := make([]string, len(route.Instructions))
	copy(instructions, route.Instructions)

	return domain.TripReport{
		DistanceKm:        km,
		DistanceMiles:     km * milesPerKm,
		DurationFormatted: FormatDuration(route.DurationSeconds),
		Instructions:      instructions,
	}
}

// The trip log is best-effort; a failed write never fails the query.
func (p *TripPlanner) record(ctx context.Context, req TripRequest, report domain.TripReport) {
	if p.history == nil {
		return
	}

	rec := domain.TripRecord{
		ID:          uuid.New(),
		Origin:      req.Origin.Text(),
		Destination: req.Destination.Text(),
		Mode:        req.Mode,
		Report:      report,
		PlannedAt:   p.now().UTC(),
	}

	if err := p.history.Record(ctx, rec); err != nil {
		zap.L().Warn("trip history write failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
	}
}
