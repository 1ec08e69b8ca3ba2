// Beacon is an analytics edge collector.
//
// It terminates pixel and batch hit traffic at the network edge,
// providing:
//   - Path-based request classification for vendor adapter endpoints
//   - Legacy tracking-pixel aliases (/ice.png, /i)
//   - Cookie and do-not-track privacy evaluation
//   - Per-request distributed tracing and outcome metrics
//
// Usage:
//
//	# Start the collector with default configuration
//	beacon run
//
//	# Start with a custom configuration file
//	beacon run --config /path/to/config.yaml
//
//	# Validate a configuration file without starting
//	beacon validate
//
//	# Show version information
//	beacon version
package main

func main() {
	Execute()
}
