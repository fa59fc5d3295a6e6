package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation constants
const (
	MinPort  = 1     // Minimum valid port number
	MaxPort  = 65535 // Maximum valid port number
	MaxDelay = 60000 // Maximum demo delay in milliseconds

	// Default values
	DefaultLogLevel           = "info"
	DefaultHTTPPort           = 9090
	DefaultServiceName        = "calltimer"
	DefaultProcessDataDelayMS = 2000
	DefaultAddNumbersDelayMS  = 1000
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ReportConfig selects the report sinks
type ReportConfig struct {
	Console *bool `yaml:"console"` // Pointer to distinguish between false and unset
	Log     bool  `yaml:"log"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled  bool `yaml:"enabled"`
	HTTPPort int  `yaml:"http_port"`
}

// TracingConfig controls OpenTelemetry span export
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // OTLP/HTTP host:port, e.g. localhost:4318
	ServiceName string `yaml:"service_name"`
}

// DemoConfig holds the simulated work of the demo call sites
type DemoConfig struct {
	ProcessDataDelayMS *int `yaml:"process_data_delay_ms"`
	AddNumbersDelayMS  *int `yaml:"add_numbers_delay_ms"`
}

// Config represents the application configuration
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Report   ReportConfig  `yaml:"report"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Tracing  TracingConfig `yaml:"tracing"`
	Demo     DemoConfig    `yaml:"demo"`
}

// Load loads configuration from a YAML file and applies environment variable
// overrides. An empty path skips the file and starts from defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		// #nosec G304 -- Config file path is provided by the operator via CLI flag
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ConsoleEnabled reports whether the stdout reporter is on
func (c *Config) ConsoleEnabled() bool {
	return c.Report.Console == nil || *c.Report.Console
}

func intPtr(i int) *int {
	return &i
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Report.Console == nil {
		enabled := true
		cfg.Report.Console = &enabled
	}
	if cfg.Metrics.HTTPPort == 0 {
		cfg.Metrics.HTTPPort = DefaultHTTPPort
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultServiceName
	}
	// Only apply delay defaults when unset; 0 is a valid explicit delay
	if cfg.Demo.ProcessDataDelayMS == nil {
		cfg.Demo.ProcessDataDelayMS = intPtr(DefaultProcessDataDelayMS)
	}
	if cfg.Demo.AddNumbersDelayMS == nil {
		cfg.Demo.AddNumbersDelayMS = intPtr(DefaultAddNumbersDelayMS)
	}
}

func envInt(name string) (int, bool, error) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: must be an integer, got %q", name, val)
	}
	return i, true, nil
}

func envBool(name string) (bool, bool, error) {
	val := os.Getenv(name)
	if val == "" {
		return false, false, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false, fmt.Errorf("invalid %s: must be a boolean, got %q", name, val)
	}
	return b, true, nil
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("CALLTIMER_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if b, ok, err := envBool("CALLTIMER_REPORT_CONSOLE"); err != nil {
		return err
	} else if ok {
		cfg.Report.Console = &b
	}

	if b, ok, err := envBool("CALLTIMER_REPORT_LOG"); err != nil {
		return err
	} else if ok {
		cfg.Report.Log = b
	}

	if b, ok, err := envBool("CALLTIMER_METRICS_ENABLED"); err != nil {
		return err
	} else if ok {
		cfg.Metrics.Enabled = b
	}

	if i, ok, err := envInt("CALLTIMER_HTTP_PORT"); err != nil {
		return err
	} else if ok {
		cfg.Metrics.HTTPPort = i
	}

	// Setting an endpoint implies tracing is wanted
	if val := os.Getenv("CALLTIMER_TRACING_ENDPOINT"); val != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Endpoint = strings.TrimSpace(val)
	}

	if i, ok, err := envInt("CALLTIMER_PROCESS_DATA_DELAY_MS"); err != nil {
		return err
	} else if ok {
		cfg.Demo.ProcessDataDelayMS = &i
	}

	if i, ok, err := envInt("CALLTIMER_ADD_NUMBERS_DELAY_MS"); err != nil {
		return err
	} else if ok {
		cfg.Demo.AddNumbersDelayMS = &i
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	if cfg.Metrics.HTTPPort < MinPort || cfg.Metrics.HTTPPort > MaxPort {
		return fmt.Errorf("metrics.http_port must be between %d and %d", MinPort, MaxPort)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}

	delays := []struct {
		name  string
		value int
	}{
		{"demo.process_data_delay_ms", *cfg.Demo.ProcessDataDelayMS},
		{"demo.add_numbers_delay_ms", *cfg.Demo.AddNumbersDelayMS},
	}
	for _, d := range delays {
		if d.value < 0 {
			return fmt.Errorf("%s cannot be negative, got %d", d.name, d.value)
		}
		if d.value > MaxDelay {
			return fmt.Errorf("%s should not exceed %d, got %d", d.name, MaxDelay, d.value)
		}
	}

	return nil
}
