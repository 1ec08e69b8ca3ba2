package config

import "time"

// Config is the root configuration structure for the Beacon collector.
type Config struct {
	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Collector contains request-handling policy: cookie selection,
	// do-not-track, the redirect endpoint toggle, adapter path mappings,
	// and the cross-domain / CORS documents served by the collector.
	Collector CollectorConfig `yaml:"collector"`

	// Telemetry contains observability configuration: logging, metrics,
	// and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "0.0.0.0:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request when
	// keep-alives are enabled. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits how much of the request header the server
	// will read. Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// CollectorConfig contains the request-handling policy for the collector.
type CollectorConfig struct {
	// CookieName is the name of the tracking cookie read from inbound
	// requests. Empty means no cookie is read at all; that is a
	// deliberate policy choice, not an error.
	CookieName string `yaml:"cookie_name"`

	// DoNotTrack configures the do-not-track cookie evaluation.
	DoNotTrack DoNotTrackConfig `yaml:"do_not_track"`

	// EnableDefaultRedirect enables the /r/... redirect endpoint family.
	// When false, any /r/{...} request is answered 404 "redirects
	// disabled" before the vendor/version rule can see it.
	// Default: false
	EnableDefaultRedirect bool `yaml:"enable_default_redirect"`

	// Paths maps "vendor/version" endpoint pairs to the resolved adapter
	// path handed to the hit pipeline. Pairs not listed resolve to
	// "/vendor/version" unchanged.
	Paths map[string]string `yaml:"paths"`

	// CrossDomain configures the Flash cross-domain policy document
	// served at /crossdomain.xml.
	CrossDomain CrossDomainConfig `yaml:"cross_domain"`

	// CORS configures the preflight response for OPTIONS requests.
	CORS CORSConfig `yaml:"cors"`
}

// DoNotTrackConfig configures the do-not-track cookie rule. When Enabled
// is false the signal is never honoured and every request is treated as
// trackable.
type DoNotTrackConfig struct {
	// Enabled turns do-not-track evaluation on. Default: false
	Enabled bool `yaml:"enabled"`

	// CookieName is the cookie carrying the do-not-track signal. It is
	// read independently of the tracking cookie and the two names may
	// differ. Default: "dnt"
	CookieName string `yaml:"cookie_name"`

	// ValuePattern is a regular expression the cookie value must match
	// (anchored) for the signal to be honoured. Default: "1"
	ValuePattern string `yaml:"value_pattern"`
}

// CrossDomainConfig configures the /crossdomain.xml policy document.
type CrossDomainConfig struct {
	// Enabled controls whether the policy document grants any access.
	// When false the path still resolves but the document carries no
	// allow-access-from entries. Default: false
	Enabled bool `yaml:"enabled"`

	// Domains lists the domains granted cross-domain access.
	// Default: ["*"]
	Domains []string `yaml:"domains"`

	// Secure requires HTTPS for the granted access. Default: false
	Secure bool `yaml:"secure"`
}

// CORSConfig configures the CORS preflight response.
type CORSConfig struct {
	// AccessControlMaxAge is how long browsers may cache the preflight
	// response. Default: 5m
	AccessControlMaxAge time.Duration `yaml:"access_control_max_age"`

	// AllowedHeaders lists request headers permitted in the actual
	// request. Default: ["Content-Type", "SP-Anonymous"]
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text. Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records. Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is mounted.
	// Counters are always recorded; this only gates the exposition
	// endpoint. Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "beacon", "collector"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// Path is where the exposition endpoint is mounted.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// RequestDurationBuckets are the histogram buckets for request
	// duration, in seconds.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`

	// FlushSchedule is a cron expression for the periodic hit-stats log
	// line. Empty disables the flusher. Default: "" (disabled)
	FlushSchedule string `yaml:"flush_schedule"`
}

// TracingConfig configures distributed tracing.
type TracingConfig struct {
	// Enabled turns tracing on. When false a noop tracer is installed.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName identifies this process in trace backends.
	// Default: "beacon-collector"
	ServiceName string `yaml:"service_name"`

	// Endpoint is the OTLP gRPC endpoint, host:port. Default:
	// "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Sampler selects the sampling strategy: always, never, ratio.
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the sampling probability for the ratio sampler.
	SampleRatio float64 `yaml:"sample_ratio"`

	// OTLP contains exporter transport options.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter transport options.
type OTLPConfig struct {
	// Insecure disables TLS on the exporter connection. Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call. Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
