// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmorrow/interntrack/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Candidate
	UserID string `json:"user_id,omitempty"` // User UUID (required for DB-based runs)

	// Scoring
	Weights     *types.Weights `json:"weights,omitempty"`     // Sub-score weights; nil selects defaults
	Concurrency int            `json:"concurrency,omitempty"` // Parallel posting workers in a batch run

	// Behavior
	APIKey        string `json:"api_key,omitempty"`         // Gemini API key
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	TrackerAPIURL string `json:"tracker_api_url,omitempty"` // Third-party application tracker base URL
	TrackerAPIKey string `json:"tracker_api_key,omitempty"` // Third-party application tracker key
	UseBrowser    bool   `json:"use_browser,omitempty"`     // Use headless browser for SPA portals
	Verbose       bool   `json:"verbose,omitempty"`         // Print detailed debug information
}

// Environment variable names read by FromEnv.
const (
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvTrackerAPIURL = "TRACKER_API_URL"
	EnvTrackerAPIKey = "TRACKER_API_KEY"
)

// DefaultConcurrency is the batch worker count when none is configured.
const DefaultConcurrency = 4

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty credential fields from the environment. File and flag
// values win over environment values.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.TrackerAPIURL == "" {
		c.TrackerAPIURL = os.Getenv(EnvTrackerAPIURL)
	}
	if c.TrackerAPIKey == "" {
		c.TrackerAPIKey = os.Getenv(EnvTrackerAPIKey)
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TrackerAPIURL == "" {
		result.TrackerAPIURL = defaults.TrackerAPIURL
	}
	if result.TrackerAPIKey == "" {
		result.TrackerAPIKey = defaults.TrackerAPIKey
	}

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = DefaultConcurrency
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ScoringWeights returns the configured weights, falling back to defaults.
func (c *Config) ScoringWeights() types.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return types.DefaultWeights()
}
