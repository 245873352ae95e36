package main

import (
	"database/sql"
	"fmt"
	"os"
	"trip-route-planner/internal/adapters/history"
	"trip-route-planner/internal/adapters/osm"
	"trip-route-planner/internal/config"
	"trip-route-planner/internal/platform/db"
	"trip-route-planner/internal/platform/obs"
	"trip-route-planner/internal/ports"
	"trip-route-planner/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	planner *services.TripPlanner
	history ports.TripLog
	db      *sql.DB
	undo    func()
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := obs.NewLogger(cfg.AppEnv, "tripplanner")
	if err != nil {
		return err
	}
	a.logger = logger
	a.undo = zap.ReplaceGlobals(logger)

	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("could not read .env file", zap.Error(envErr))
	} else if envErr != nil {
		logger.Debug("no .env file found (using environment variables)")
	}

	geocoder, err := osm.NewNominatimGeocoder(osm.ClientConfig{
		BaseURL:   cfg.GeocoderURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.GeocoderTimeout,
	})
	if err != nil {
		return err
	}

	router, err := osm.NewOSRMRouter(osm.ClientConfig{
		BaseURL:   cfg.RouterURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RouterTimeout,
	})
	if err != nil {
		return err
	}

	if cfg.HistoryDriver != "" {
		if err := a.openHistory(cfg); err != nil {
			return err
		}
	}

	a.planner, err = services.NewTripPlanner(geocoder, router, a.history)
	if err != nil {
		return err
	}

	logger.Debug("trip planner ready",
		zap.String("geocoder", cfg.GeocoderURL),
		zap.String("router", cfg.RouterURL),
		zap.String("origin_hint", cfg.OriginHint),
		zap.String("destination_hint", cfg.DestinationHint),
		zap.Bool("history", a.history != nil),
	)
	return nil
}

func (a *app) openHistory(cfg *config.Config) error {
	conn, err := db.Open(cfg.HistoryDriver, cfg.HistoryDSN)
	if err != nil {
		return fmt.Errorf("open trip history: %w", err)
	}
	a.db = conn

	dialect := history.Dialect(cfg.HistoryDriver)
	if err := history.InitSchema(conn, dialect); err != nil {
		return fmt.Errorf("open trip history: %w", err)
	}

	a.history, err = history.NewTripLog(conn, dialect)
	if err != nil {
		return fmt.Errorf("open trip history: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close trip history", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.undo != nil {
		a.undo()
	}
}
