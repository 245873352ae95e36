package osm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/platform/obs"

	"go.uber.org/zap"
)

const DefaultGeocoderURL = "https://nominatim.openstreetmap.org"

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder implements PlaceResolver against a Nominatim /search endpoint.
//
// Each Resolve call issues exactly one request and keeps only the top-ranked
// candidate. The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	c *client
}

func NewNominatimGeocoder(cfg ClientConfig) (*NominatimGeocoder, error) {
	c, err := newClient(cfg, DefaultGeocoderURL)
	if err != nil {
		return nil, fmt.Errorf("new nominatim geocoder: %w", err)
	}
	return &NominatimGeocoder{c: c}, nil
}

func (g *NominatimGeocoder) Resolve(ctx context.Context, query domain.PlaceQuery) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	text := query.Text()
	if text == "" {
		return domain.Coordinates{}, fmt.Errorf("resolve place: %w: empty place name", domain.ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []searchResult
	if err := g.c.getJSON(ctx, "/search", q, &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve place %q: %w", text, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("resolve place %q: %w", text, domain.ErrNotFound)
	}

	best := results[0]
	coords, err := parseCoordinates(best.Lat, best.Lon)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve place %q: %w: %w", text, domain.ErrServiceError, err)
	}

	zap.L().Debug("place resolved",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("query", text),
		zap.String("display_name", best.DisplayName),
		zap.Float64("lat", coords.Lat),
		zap.Float64("lon", coords.Lon),
	)

	return coords, nil
}

func parseCoordinates(lat, lon string) (domain.Coordinates, error) {
	if strings.TrimSpace(lat) == "" || strings.TrimSpace(lon) == "" {
		return domain.Coordinates{}, errors.New("candidate is missing lat/lon")
	}

	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon %q: %w", lon, err)
	}

	return domain.Coordinates{Lat: la, Lon: lo}, nil
}
