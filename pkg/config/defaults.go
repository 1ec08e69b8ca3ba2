package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20

	DefaultDNTCookieName   = "dnt"
	DefaultDNTValuePattern = "1"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "beacon"
	DefaultMetricsSubsystem = "collector"
	DefaultMetricsPath      = "/metrics"

	DefaultTracingServiceName = "beacon-collector"
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingSampler     = "always"
	DefaultOTLPTimeout        = 10 * time.Second

	DefaultCORSMaxAge = 5 * time.Minute
)

// ApplyDefaults fills in default values for any field left unset. It is
// called by LoadConfig after parsing and is safe to call on a zero Config.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Collector
	if cfg.Collector.DoNotTrack.CookieName == "" {
		cfg.Collector.DoNotTrack.CookieName = DefaultDNTCookieName
	}
	if cfg.Collector.DoNotTrack.ValuePattern == "" {
		cfg.Collector.DoNotTrack.ValuePattern = DefaultDNTValuePattern
	}
	if cfg.Collector.CrossDomain.Domains == nil {
		cfg.Collector.CrossDomain.Domains = []string{"*"}
	}
	if cfg.Collector.CORS.AccessControlMaxAge == 0 {
		cfg.Collector.CORS.AccessControlMaxAge = DefaultCORSMaxAge
	}
	if cfg.Collector.CORS.AllowedHeaders == nil {
		cfg.Collector.CORS.AllowedHeaders = []string{"Content-Type", "SP-Anonymous"}
	}

	// Telemetry: logging
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	// Telemetry: metrics
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.RequestDurationBuckets == nil {
		cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		}
	}

	// Telemetry: tracing
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = 1.0
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}

// DefaultConfig returns a fully defaulted configuration, the same result
// as loading an empty file. Metrics default to enabled.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}
