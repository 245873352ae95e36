package main

import (
	"context"
	"errors"
	"net/http"
	"time"
	"trip-route-planner/internal/api"
	"trip-route-planner/internal/api/handlers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve trip planning over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = app.cfg.Port
			}

			router := api.NewRouter(app.planner, app.history, handlers.Hints{
				Origin:      app.cfg.OriginHint,
				Destination: app.cfg.DestinationHint,
			})

			// Write timeout covers two geocodes plus one route at their configured limits.
			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      app.cfg.GeocoderTimeout + app.cfg.RouterTimeout + 5*time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return serve(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Listen port (env PORT)")
	return cmd
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	zap.L().Info("server stopped")
	return nil
}
