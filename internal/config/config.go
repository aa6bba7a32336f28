// Package config provides configuration types and helpers for trimdiff.
package config

// Config holds the application-wide configuration.
type Config struct {
	// TokenLimit is the output token budget for preprocessing.
	TokenLimit int `mapstructure:"token_limit"`

	// Model is the model identifier used for token counting.
	Model string `mapstructure:"model"`

	// Format selects output rendering: "text", "json", or "table".
	Format string `mapstructure:"format"`

	// Color controls ANSI color: "auto", "always", or "never".
	Color string `mapstructure:"color"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`

	// Filter controls the noise filter (binary/minified/lockfile sections).
	Filter FilterConfig `mapstructure:"filter"`
}

// FilterConfig holds noise-filter settings.
type FilterConfig struct {
	// Enabled controls whether section filtering is active.
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		TokenLimit: 8000,
		Model:      "gpt-4o",
		Format:     "text",
		Color:      "auto",
		Filter:     FilterConfig{Enabled: true},
	}
}
