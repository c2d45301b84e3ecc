// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// EnvAPIKey is the environment variable supplying the completion-service
// credential. Its absence is a first-class state: the engine runs with the
// synthesizer fallback, not an error raised lazily on first call.
const EnvAPIKey = "GEMINI_API_KEY"

// Config represents engine configuration. All fields are optional; missing
// values use defaults or environment variables.
type Config struct {
	// APIKey is the Gemini credential; empty means completion disabled
	APIKey string `json:"api_key,omitempty"`
	// StatePath is the JSON state file location (file backend)
	StatePath string `json:"state_path,omitempty"`
	// DatabaseURL selects the PostgreSQL state backend when set
	DatabaseURL string `json:"database_url,omitempty"`
	// Port is the HTTP API listen port
	Port int `json:"port,omitempty"`
	// CompletionTimeoutSeconds bounds each completion call
	CompletionTimeoutSeconds int `json:"completion_timeout_seconds,omitempty"`
	// AnalyzeDwellMillis is the pipeline's Analyzing pacing delay
	AnalyzeDwellMillis int `json:"analyze_dwell_millis,omitempty"`
	// Verbose prints detailed progress information
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv builds a Config from environment variables and defaults
func FromEnv() *Config {
	cfg := &Config{
		APIKey:      os.Getenv(EnvAPIKey),
		StatePath:   os.Getenv("COACH_STATE_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if cfg.StatePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.StatePath = filepath.Join(home, ".career-coach", "state.json")
		} else {
			cfg.StatePath = "state.json"
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("COMPLETION_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.CompletionTimeoutSeconds = secs
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.CompletionTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'completion_timeout_seconds' must be non-negative")
	}
	if c.AnalyzeDwellMillis < 0 {
		return fmt.Errorf("config error: 'analyze_dwell_millis' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config-file values under CLI flags and env.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.StatePath == "" {
		result.StatePath = defaults.StatePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CompletionTimeoutSeconds == 0 {
		result.CompletionTimeoutSeconds = defaults.CompletionTimeoutSeconds
	}
	if result.AnalyzeDwellMillis == 0 {
		result.AnalyzeDwellMillis = defaults.AnalyzeDwellMillis
	}
	return result
}

// CompletionTimeout returns the per-call timeout as a duration, zero when unset
func (c *Config) CompletionTimeout() time.Duration {
	return time.Duration(c.CompletionTimeoutSeconds) * time.Second
}

// AnalyzeDwell returns the pacing delay as a duration, zero when unset
func (c *Config) AnalyzeDwell() time.Duration {
	return time.Duration(c.AnalyzeDwellMillis) * time.Millisecond
}
