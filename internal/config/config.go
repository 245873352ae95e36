package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the trip planner settings read from the environment.
type Config struct {
	AppEnv string

	GeocoderURL     string
	RouterURL       string
	UserAgent       string
	GeocoderTimeout time.Duration
	RouterTimeout   time.Duration

	// Disambiguation hints appended to origin and destination queries.
	OriginHint      string
	DestinationHint string

	// Empty HistoryDriver disables the trip log.
	HistoryDriver string
	HistoryDSN    string

	ExitToken string

	// Listen port for the serve command.
	Port string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookup is Get for settings where an explicit empty value means "off".
func lookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

// Load reads configuration from environment variables.
// Call godotenv.Load first to pick up a local .env file.
func Load() (*Config, error) {
	geocoderTimeout, err := getDuration("GEOCODER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	routerTimeout, err := getDuration("ROUTER_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:          Get("APP_ENV", "production"),
		GeocoderURL:     Get("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		RouterURL:       Get("ROUTER_URL", "http://router.project-osrm.org"),
		UserAgent:       Get("USER_AGENT", "trip-route-planner/1.0"),
		GeocoderTimeout: geocoderTimeout,
		RouterTimeout:   routerTimeout,
		OriginHint:      lookup("ORIGIN_HINT", "Chile"),
		DestinationHint: lookup("DESTINATION_HINT", "Argentina"),
		HistoryDriver:   strings.ToLower(strings.TrimSpace(os.Getenv("HISTORY_DRIVER"))),
		HistoryDSN:      os.Getenv("HISTORY_DSN"),
		ExitToken:       Get("EXIT_TOKEN", "q"),
		Port:            Get("PORT", "8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also have been overridden by flags.
func (c *Config) Validate() error {
	if c.GeocoderTimeout <= 0 || c.RouterTimeout <= 0 {
		return fmt.Errorf("config: timeouts must be positive (geocoder=%s router=%s)", c.GeocoderTimeout, c.RouterTimeout)
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("config: USER_AGENT is required")
	}
	if strings.TrimSpace(c.ExitToken) == "" {
		return fmt.Errorf("config: EXIT_TOKEN must be non-empty")
	}

	switch c.HistoryDriver {
	case "":
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.HistoryDSN) == "" {
			return fmt.Errorf("config: HISTORY_DSN is required when HISTORY_DRIVER=%s", c.HistoryDriver)
		}
	default:
		return fmt.Errorf("config: unsupported HISTORY_DRIVER %q (want %s or %s)", c.HistoryDriver, DriverSQLite, DriverPostgres)
	}

	return nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
