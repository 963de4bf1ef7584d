// Package config defines report configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
)

// Supported report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the shot log to read. "-" reads from stdin.
	InputPath string `koanf:"input_path"`

	// OutputFormat selects the renderer: text or json.
	OutputFormat string `koanf:"output_format"`

	// ExpectedTeams rejects inputs with a different number of distinct
	// teams. Zero accepts any team count.
	ExpectedTeams int `koanf:"expected_teams"`

	// MetricsFile, when set, receives a Prometheus textfile dump at the end
	// of the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		InputPath:     "Datasets/shots_data.csv",
		OutputFormat:  FormatText,
		ExpectedTeams: 0,
		MetricsFile:   "",
	}
}
