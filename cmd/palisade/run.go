package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"palisade-hq/palisade/pkg/cache"
	"palisade-hq/palisade/pkg/config"
	"palisade-hq/palisade/pkg/realm"
	"palisade-hq/palisade/pkg/realmfactory"
	"palisade-hq/palisade/pkg/registry"
	"palisade-hq/palisade/pkg/security/activation"
	"palisade-hq/palisade/pkg/telemetry/logging"
	"palisade-hq/palisade/pkg/telemetry/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Palisade cache node",
	Long: `Run starts a cache node: it builds the declared regions, registers the
declared security realms, performs security activation, and serves the
metrics endpoint until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNode(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runNode(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return err
	}
	logger := slog.Default().With("component", "node")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The cache must exist before security activation runs.
	c, err := buildCache(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close cache", "error", err)
		}
	}()

	if err := activateSecurity(ctx, cfg, c, logger); err != nil {
		return err
	}

	if cfg.Telemetry.Metrics.Enabled {
		go serveMetrics(cfg.Telemetry.Metrics.ListenAddress, logger)
	}

	logger.Info("node started",
		"regions", c.RegionNames(),
		"integrated_security", c.SecurityService().IsIntegratedSecurity(),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// buildCache constructs the cache from its configuration.
func buildCache(cfg *config.Config) (*cache.Cache, error) {
	opts := cache.Options{DBPath: cfg.Cache.DBPath}
	for _, region := range cfg.Cache.Regions {
		opts.Regions = append(opts.Regions, cache.RegionOptions{
			Name:    region.Name,
			Storage: cache.Storage(region.Storage),
		})
	}
	return cache.New(opts)
}

// activateSecurity registers the declared realms and runs security
// activation against the cache. A disabled security section or an
// absent realm integration skips activation entirely.
func activateSecurity(ctx context.Context, cfg *config.Config, c *cache.Cache, logger *slog.Logger) error {
	if !cfg.SecurityEnabled() {
		logger.Info("security disabled by configuration")
		return nil
	}
	if !activation.Present() {
		logger.Info("realm integration not present, skipping security activation")
		return nil
	}

	reg := registry.New()
	if err := realmfactory.Populate(reg, cfg.Security.Realms); err != nil {
		return err
	}

	manager, err := activation.New(reg).Activate(ctx, c)
	if err != nil {
		return fmt.Errorf("security activation failed: %w", err)
	}
	if manager == nil {
		return nil
	}

	// Schedule credential reloads for realms that support it.
	var refreshables []realm.Refreshable
	for _, r := range manager.Realms() {
		if refreshable, ok := r.(realm.Refreshable); ok {
			refreshables = append(refreshables, refreshable)
		}
	}
	refresher := realm.NewRefresher(refreshables, cfg.Security.RefreshSchedule)
	if err := refresher.Start(ctx); err != nil {
		return err
	}

	return nil
}

// serveMetrics exposes the Prometheus endpoint.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("metrics endpoint listening", "address", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint failed", "error", err)
	}
}
