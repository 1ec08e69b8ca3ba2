package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beaconhq/beacon/pkg/cli"
	"beaconhq/beacon/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the collector.

The validate command applies defaults, checks the listen address, the
do-not-track value pattern, adapter path mappings and telemetry settings,
and reports the effective configuration summary.

Examples:
  # Validate the default config file
  beacon validate

  # Validate a specific file with JSON output
  beacon validate --config /etc/beacon/config.yaml --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// validationSummary is the validate command's result.
type validationSummary struct {
	File             string `json:"file"`
	Valid            bool   `json:"valid"`
	ListenAddress    string `json:"listen_address"`
	CookieName       string `json:"cookie_name,omitempty"`
	DoNotTrack       bool   `json:"do_not_track"`
	RedirectsEnabled bool   `json:"redirects_enabled"`
	AdapterPaths     int    `json:"adapter_paths"`
	MetricsEnabled   bool   `json:"metrics_enabled"`
	TracingEnabled   bool   `json:"tracing_enabled"`
}

func (s validationSummary) String() string {
	return fmt.Sprintf(
		"✓ Configuration valid: %s\n  listen: %s\n  cookie: %q\n  do-not-track: %t\n  redirects: %t\n  adapter paths: %d\n  metrics: %t\n  tracing: %t",
		s.File, s.ListenAddress, s.CookieName, s.DoNotTrack, s.RedirectsEnabled,
		s.AdapterPaths, s.MetricsEnabled, s.TracingEnabled,
	)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("validation failed: %v", err))
	}

	summary := validationSummary{
		File:             cfgFile,
		Valid:            true,
		ListenAddress:    cfg.Server.ListenAddress,
		CookieName:       cfg.Collector.CookieName,
		DoNotTrack:       cfg.Collector.DoNotTrack.Enabled,
		RedirectsEnabled: cfg.Collector.EnableDefaultRedirect,
		AdapterPaths:     len(cfg.Collector.Paths),
		MetricsEnabled:   cfg.Telemetry.Metrics.Enabled,
		TracingEnabled:   cfg.Telemetry.Tracing.Enabled,
	}

	formatter := cli.NewFormatter(cli.OutputFormat(validateFlags.format))
	return formatter.FormatTo(os.Stdout, summary)
}
