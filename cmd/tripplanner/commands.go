package main

import (
	"errors"
	"fmt"
	"time"
	"trip-route-planner/internal/cli"
	"trip-route-planner/internal/config"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/services"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	geocoderURL     string
	routerURL       string
	originHint      string
	destinationHint string
	geocoderTimeout time.Duration
	routerTimeout   time.Duration
	verbose         bool
}

func newRootCmd(app *app) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tripplanner",
		Short: "Plan a trip between two cities",
		Long: `Resolves an origin and a destination city with a geocoding service, asks a routing
engine for a route in the chosen travel mode, and prints distance, duration and directions.

Without a subcommand it starts an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			session := cli.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), app.planner, cli.SessionConfig{
				OriginHint:      app.cfg.OriginHint,
				DestinationHint: app.cfg.DestinationHint,
				ExitToken:       app.cfg.ExitToken,
			})
			return session.Run(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.geocoderURL, "geocoder-url", "", "Geocoding service base URL (env GEOCODER_URL)")
	f.StringVar(&opts.routerURL, "router-url", "", "Routing service base URL (env ROUTER_URL)")
	f.StringVar(&opts.originHint, "origin-hint", "", "Country/region appended to origin queries (env ORIGIN_HINT)")
	f.StringVar(&opts.destinationHint, "destination-hint", "", "Country/region appended to destination queries (env DESTINATION_HINT)")
	f.DurationVar(&opts.geocoderTimeout, "geocoder-timeout", 0, "Per-call geocoding timeout (env GEOCODER_TIMEOUT)")
	f.DurationVar(&opts.routerTimeout, "router-timeout", 0, "Per-call routing timeout (env ROUTER_TIMEOUT)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(newPlanCmd(app), newHistoryCmd(app), newServeCmd(app))
	return root
}

func newPlanCmd(app *app) *cobra.Command {
	var (
		from, to, mode string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a single trip and exit",
		Example: `  tripplanner plan --from Santiago --to Mendoza --mode driving
  tripplanner plan --from Montevideo --to "Punta del Este" --origin-hint Uruguay --destination-hint Uruguay --mode 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			report, err := app.planner.Plan(cmd.Context(), services.TripRequest{
				Origin:      domain.PlaceQuery{RawText: from, Hint: app.cfg.OriginHint},
				Destination: domain.PlaceQuery{RawText: to, Hint: app.cfg.DestinationHint},
				Mode:        m,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", domain.FailureMessage(err), err)
			}

			if asJSON {
				return cli.RenderReportJSON(cmd.OutOrStdout(), report)
			}
			cli.RenderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin city")
	cmd.Flags().StringVar(&to, "to", "", "Destination city")
	cmd.Flags().StringVarP(&mode, "mode", "m", "driving", "Travel mode: driving|walking|cycling or 1|2|3")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newHistoryCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently planned trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.history == nil {
				return errors.New("trip history is disabled; set HISTORY_DRIVER and HISTORY_DSN")
			}

			records, err := app.history.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No trips recorded yet.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-8s %s -> %s  %.2f km  %s\n",
					r.PlannedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.Origin, r.Destination,
					r.Report.DistanceKm, r.Report.DurationFormatted)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of trips to show")
	return cmd
}

// parseMode accepts either a profile name or a menu selector.
func parseMode(s string) (domain.TravelMode, error) {
	if m, err := domain.TravelModeFromSelector(s); err == nil {
		return m, nil
	}
	return domain.ParseTravelMode(s)
}

// applyFlags overrides environment configuration with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("geocoder-url") {
		cfg.GeocoderURL = opts.geocoderURL
	}
	if f.Changed("router-url") {
		cfg.RouterURL = opts.routerURL
	}
	if f.Changed("origin-hint") {
		cfg.OriginHint = opts.originHint
	}
	if f.Changed("destination-hint") {
		cfg.DestinationHint = opts.destinationHint
	}
	if f.Changed("geocoder-timeout") {
		cfg.GeocoderTimeout = opts.geocoderTimeout
	}
	if f.Changed("router-timeout") {
		cfg.RouterTimeout = opts.routerTimeout
	}
	if opts.verbose {
		cfg.AppEnv = "development"
	}
}
