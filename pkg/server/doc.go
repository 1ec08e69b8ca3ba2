// Package server provides the HTTP front for the Beacon collector.
//
// This package ties the collector router, the metrics exposition endpoint
// and the middleware chain together and manages the server lifecycle:
// start, graceful shutdown, and OS signal handling (SIGTERM, SIGINT).
//
// # Basic Usage
//
// Creating and starting a server:
//
//	import (
//	    "context"
//	    "beaconhq/beacon/pkg/config"
//	    "beaconhq/beacon/pkg/router"
//	    "beaconhq/beacon/pkg/server"
//	)
//
//	rt := router.New(service, tracer, hitMetrics, logger)
//	srv := server.NewServer(&cfg.Server, rt,
//	    server.WithMetricsHandler(cfg.Telemetry.Metrics.Path, hitMetrics.Handler()),
//	)
//	if err := srv.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
// The mux carries exactly two mounts:
//
//   - <metrics path> - Prometheus exposition, when enabled
//   - /              - the collector router, which owns all request
//     classification and guarantees its own 404 fallback
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost first):
//  1. Recovery: recovers from panics and returns a plain 500
//  2. RequestID: attaches a unique request ID for correlation
//  3. Logging: logs request/response details with latency
//
// # Graceful Shutdown
//
// On SIGTERM/SIGINT or context cancellation the server stops accepting
// new connections, waits up to the configured shutdown timeout for
// in-flight requests, then forces connection closure.
package server
