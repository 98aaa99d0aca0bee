// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and the environment.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataFile is a local data.js produced by the benchmark action.
	DataFile string `koanf:"data_file"`

	// DataURL is a remote data.js. It wins over DataFile when both are set.
	DataURL string `koanf:"data_url"`

	// RefreshIntervalSec reloads the data source periodically. Zero loads once.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// ChartHeight is the fixed chart height in pixels.
	ChartHeight int `koanf:"chart_height"`

	// ChartScriptURL is where rendered pages load Chart.js from.
	ChartScriptURL string `koanf:"chart_script_url"`

	// ToolColors overrides series colors per tool identifier.
	ToolColors map[string]string `koanf:"tool_colors"`

	// DefaultColor is used for tools without a color.
	DefaultColor string `koanf:"default_color"`

	// HTTPRetryMax bounds retries when fetching DataURL.
	HTTPRetryMax int `koanf:"http_retry_max"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DataFile:           "dev/bench/data.js",
		RefreshIntervalSec: 60,
		ChartHeight:        300,
		ToolColors:         map[string]string{},
		DefaultColor:       "#333333",
		HTTPRetryMax:       3,
	}
}

// RefreshInterval returns RefreshIntervalSec as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataFile == "" && c.DataURL == "":
		return fmt.Errorf("%w: one of data_file or data_url is required", ErrInvalidConfig)
	case c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart_height must be positive, got %d", ErrInvalidConfig, c.ChartHeight)
	case c.RefreshIntervalSec < 0:
		return fmt.Errorf("%w: refresh_interval_sec must not be negative", ErrInvalidConfig)
	case c.HTTPRetryMax < 0:
		return fmt.Errorf("%w: http_retry_max must not be negative", ErrInvalidConfig)
	}
	return nil
}
