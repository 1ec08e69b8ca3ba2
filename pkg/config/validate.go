package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for internal consistency. It returns
// the first problem found, naming the offending field.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}
	if err := validateCollector(&cfg.Collector); err != nil {
		return err
	}
	return validateTelemetry(&cfg.Telemetry)
}

func validateServer(cfg *ServerConfig) error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("server.listen_address: must not be empty")
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("server.listen_address: %q is not host:port: %w", cfg.ListenAddress, err)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if cfg.MaxHeaderBytes < 0 {
		return fmt.Errorf("server.max_header_bytes: must not be negative")
	}
	return nil
}

func validateCollector(cfg *CollectorConfig) error {
	if cfg.DoNotTrack.Enabled {
		if cfg.DoNotTrack.CookieName == "" {
			return fmt.Errorf("collector.do_not_track.cookie_name: must not be empty when do-not-track is enabled")
		}
		if _, err := regexp.Compile(cfg.DoNotTrack.ValuePattern); err != nil {
			return fmt.Errorf("collector.do_not_track.value_pattern: %w", err)
		}
	}
	for pair := range cfg.Paths {
		parts := strings.Split(pair, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("collector.paths: key %q is not of the form vendor/version", pair)
		}
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level: unsupported level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format: unsupported format %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path: %q must start with /", cfg.Metrics.Path)
	}
	if cfg.Metrics.FlushSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Metrics.FlushSchedule); err != nil {
			return fmt.Errorf("telemetry.metrics.flush_schedule: %w", err)
		}
	}

	if cfg.Tracing.Enabled {
		if cfg.Tracing.Endpoint == "" {
			return fmt.Errorf("telemetry.tracing.endpoint: must not be empty when tracing is enabled")
		}
		switch cfg.Tracing.Sampler {
		case "always", "never", "ratio":
		default:
			return fmt.Errorf("telemetry.tracing.sampler: unsupported sampler %q", cfg.Tracing.Sampler)
		}
		if cfg.Tracing.Sampler == "ratio" && (cfg.Tracing.SampleRatio <= 0 || cfg.Tracing.SampleRatio > 1) {
			return fmt.Errorf("telemetry.tracing.sample_ratio: must be in (0, 1], got %v", cfg.Tracing.SampleRatio)
		}
	}

	return nil
}
