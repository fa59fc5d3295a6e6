// Package config provides configuration management for calltimer.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. YAML configuration file (optional)
//  3. Default values (lowest priority)
//
// Supported environment variables:
//   - CALLTIMER_LOG_LEVEL: Log level (debug, info, warn, error)
//   - CALLTIMER_REPORT_CONSOLE: Print timing lines to stdout (true/false)
//   - CALLTIMER_REPORT_LOG: Also emit timings as structured log records
//   - CALLTIMER_METRICS_ENABLED: Serve Prometheus metrics
//   - CALLTIMER_HTTP_PORT: Metrics HTTP port (1-65535)
//   - CALLTIMER_TRACING_ENDPOINT: OTLP/HTTP endpoint; enables tracing
//   - CALLTIMER_PROCESS_DATA_DELAY_MS: Simulated work in process_data
//   - CALLTIMER_ADD_NUMBERS_DELAY_MS: Simulated work in add_numbers
//
// Example configuration file (config.yaml):
//
//	log_level: "info"
//
//	report:
//	  console: true
//	  log: false
//
//	metrics:
//	  enabled: true
//	  http_port: 9090
//
//	tracing:
//	  enabled: false
//	  endpoint: "localhost:4318"
//	  service_name: "calltimer"
//
//	demo:
//	  process_data_delay_ms: 2000
//	  add_numbers_delay_ms: 1000
package config
