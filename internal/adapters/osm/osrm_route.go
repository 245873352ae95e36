package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/platform/obs"
)

const (
	DefaultRouterURL = "http://router.project-osrm.org"

	// Used when a step carries neither maneuver text nor a road name.
	NoInstructionText = "No detailed instruction available"

	osrmCodeOK = "Ok"
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Legs     []struct {
			Steps []routeStep `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type routeStep struct {
	Name     string `json:"name"`
	Maneuver struct {
		Instruction string `json:"instruction"`
	} `json:"maneuver"`
}

// OSRMRouter implements RouteProvider against an OSRM /route/v1 endpoint.
// It requests step-level maneuvers only; route geometry is never requested.
type OSRMRouter struct {
	c *client
}

func NewOSRMRouter(cfg ClientConfig) (*OSRMRouter, error) {
	c, err := newClient(cfg, DefaultRouterURL)
	if err != nil {
		return nil, fmt.Errorf("new osrm router: %w", err)
	}
	return &OSRMRouter{c: c}, nil
}

func (r *OSRMRouter) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	if !mode.Valid() {
		return domain.RouteResult{}, fmt.Errorf("route: mode %v: %w", mode, domain.ErrInvalidInput)
	}

	path := fmt.Sprintf("/route/v1/%s/%s;%s", mode, origin.PathSegment(), destination.PathSegment())

	q := url.Values{}
	q.Set("overview", "false")
	q.Set("steps", "true")

	var decoded routeResponse
	if err := r.c.getJSON(ctx, path, q, &decoded); err != nil {
		// OSRM answers routing failures (NoRoute, NoSegment, ...) with a 4xx
		// carrying a JSON code; those are not transport problems.
		if !statusBody(err, &decoded) {
			return domain.RouteResult{}, fmt.Errorf("route %s: %w", mode, err)
		}
	}

	if decoded.Code != osrmCodeOK {
		return domain.RouteResult{}, fmt.Errorf("route %s: code=%q %s: %w", mode, decoded.Code, decoded.Message, domain.ErrNotFound)
	}
	if len(decoded.Routes) == 0 {
		return domain.RouteResult{}, fmt.Errorf("route %s: no route candidates: %w", mode, domain.ErrNotFound)
	}

	best := decoded.Routes[0]

	instructions := make([]string, 0)
	for _, leg := range best.Legs {
		for _, step := range leg.Steps {
			instructions = append(instructions, step.instructionText())
		}
	}

	return domain.RouteResult{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Instructions:    instructions,
	}, nil
}

// Maneuver text, then road name, then the fixed placeholder.
func (s routeStep) instructionText() string {
	if s.Maneuver.Instruction != "" {
		return s.Maneuver.Instruction
	}
	if s.Name != "" {
		return s.Name
	}
	return NoInstructionText
}

// statusBody reports whether err is a 4xx whose body is an OSRM status object, decoding it into out.
func statusBody(err error, out *routeResponse) bool {
	var he *httpStatusError
	if !errors.As(err, &he) || he.Code < 400 || he.Code >= 500 {
		return false
	}
	if jsonErr := json.Unmarshal([]byte(he.Body), out); jsonErr != nil {
		return false
	}
	return out.Code != "" && he.Code != http.StatusTooManyRequests
}
