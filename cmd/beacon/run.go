package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"beaconhq/beacon/pkg/cli"
	"beaconhq/beacon/pkg/collector"
	"beaconhq/beacon/pkg/config"
	"beaconhq/beacon/pkg/router"
	"beaconhq/beacon/pkg/server"
	"beaconhq/beacon/pkg/telemetry/logging"
	"beaconhq/beacon/pkg/telemetry/metrics"
	"beaconhq/beacon/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Beacon collector",
	Long: `Start the Beacon collector with the specified configuration.

The collector listens on the configured address and answers pixel and
batch hit traffic, recording tracing spans and outcome metrics for every
request.

Examples:
  # Start with default config
  beacon run

  # Start with custom config
  beacon run --config /etc/beacon/config.yaml

  # Override listen address
  beacon run --listen 0.0.0.0:8080

  # Validate config without starting the collector
  beacon run --dry-run`,
	RunE: runCollector,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the collector")
}

func runCollector(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger := logging.Setup(&cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Beacon v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	ctx := cli.SetupSignalHandler()

	// Tracing
	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("initializing tracing: %w", err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()
	if tracer.Enabled() {
		fmt.Printf("✓ Tracing enabled (endpoint %s)\n", cfg.Telemetry.Tracing.Endpoint)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	hitMetrics := metrics.NewHitMetrics(&cfg.Telemetry.Metrics, registry)

	// Collector service
	settings, err := collector.SettingsFromConfig(&cfg.Collector)
	if err != nil {
		return cli.NewConfigError("collector", err.Error())
	}
	service := collector.NewPixelService(settings, logger)
	fmt.Printf("✓ Collector initialized (%d adapter paths)\n", len(cfg.Collector.Paths))

	rt := router.New(service, tracer, hitMetrics, logger)

	// Periodic stats flusher
	if cfg.Telemetry.Metrics.FlushSchedule != "" {
		flusher := metrics.NewFlusher(hitMetrics, cfg.Telemetry.Metrics.FlushSchedule, logger)
		if err := flusher.Start(ctx); err != nil {
			slog.Warn("failed to start stats flusher", "error", err)
		} else {
			defer flusher.Stop()
		}
	}

	// Hot reload of collector policy
	watcher, err := config.NewWatcher(cfgFile, config.WithLogger(logger))
	if err != nil {
		slog.Warn("config watching unavailable", "error", err)
	} else {
		go func() {
			err := watcher.Watch(ctx, func() error {
				next, err := config.LoadConfigWithEnvOverrides(cfgFile)
				if err != nil {
					return err
				}
				nextSettings, err := collector.SettingsFromConfig(&next.Collector)
				if err != nil {
					return err
				}
				service.UpdateSettings(nextSettings)
				return nil
			})
			if err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	var opts []server.Option
	if cfg.Telemetry.Metrics.Enabled {
		opts = append(opts, server.WithMetricsHandler(cfg.Telemetry.Metrics.Path, hitMetrics.Handler()))
	}

	srv := server.NewServer(&cfg.Server, rt, opts...)

	fmt.Printf("✓ Listening on %s\n", cfg.Server.ListenAddress)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Collector stopped")
	return nil
}
