// Package serve implements the serve command.
package serve

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tphakala/pokereview/internal/api"
	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/datastore"
	"github.com/tphakala/pokereview/internal/datastore/seed"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability"
)

// RowCountInterval is how often table sizes are refreshed for /metrics.
const RowCountInterval = time.Minute

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		port      string
		seedFirst bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over the loaded configuration.
			if cmd.Flags().Changed("port") {
				settings.WebServer.Port = port
			}
			if cmd.Flags().Changed("seed") {
				settings.Seed.OnStartup = seedFirst
			}
			return Run(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides webserver.port)")
	cmd.Flags().BoolVar(&seedFirst, "seed", false, "Seed an empty database before serving")
	return cmd
}

// Run opens the database, optionally seeds it and serves the API until ctx
// is cancelled.
func Run(ctx context.Context, settings *conf.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !settings.WebServer.Enabled {
		return errors.Newf("web server is disabled in configuration").
			Component("serve").
			Category(errors.CategoryConfiguration).
			Build()
	}
	log := logger.Global().Module("serve")

	metrics, err := observability.NewMetrics()
	if err != nil {
		return err
	}

	store, err := datastore.Open(ctx, settings.Database.DatastoreConfig(), logger.Global().Module("datastore"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", logger.Error(err))
		}
	}()

	sessions := session.NewFactory(store.DB(),
		session.WithLogger(logger.Global().Module("session")),
		session.WithRecorder(metrics.Datastore))

	if settings.Seed.OnStartup {
		if _, err := seed.NewLoader(sessions.New(), seed.WithRecorder(metrics.Datastore)).Run(ctx); err != nil {
			return err
		}
	}

	server, err := api.New(settings, sessions,
		api.WithLogger(logger.Global().Module("api")),
		api.WithMetrics(metrics))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	if settings.WebServer.Metrics {
		g.Go(func() error {
			reportRowCounts(gctx, seed.NewLoader(sessions.New(), seed.WithRecorder(metrics.Datastore)), log)
			return nil
		})
	}

	log.Info("pokereview serving",
		logger.String("database", store.Type()),
		logger.String("location", store.Location()),
		logger.String("address", settings.WebServer.Address()))
	return g.Wait()
}

// reportRowCounts publishes table sizes until ctx is cancelled.
func reportRowCounts(ctx context.Context, loader *seed.Loader, log logger.Logger) {
	ticker := time.NewTicker(RowCountInterval)
	defer ticker.Stop()
	for {
		if _, err := loader.Report(ctx); err != nil && ctx.Err() == nil {
			log.Warn("failed to refresh table row counts", logger.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
