// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Environment variables recognized by FromEnv.
const (
	EnvBaseURL   = "CAREER_AGENT_BASE_URL"
	EnvTimeout   = "CAREER_AGENT_TIMEOUT_SECONDS"
	EnvSessionID = "CAREER_AGENT_SESSION_ID"
	EnvExportDir = "CAREER_AGENT_EXPORT_DIR"
	EnvVerbose   = "CAREER_AGENT_VERBOSE"
)

// DefaultTimeoutSeconds bounds every request to the service.
const DefaultTimeoutSeconds = 30

// Config represents the CLI configuration. Values can come from a JSON file,
// the environment, or flags; all fields are optional and missing values use
// defaults.
type Config struct {
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"`           // Service address
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"`            // Per-request timeout
	SessionID      string `json:"session_id,omitempty" validate:"omitempty,uuid4"`       // Optional session identifier sent with every request
	ExportDir      string `json:"export_dir,omitempty"`                                  // Where transcript exports are written
	Verbose        bool   `json:"verbose,omitempty"`                                     // Print detailed debug information
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:8000",
		TimeoutSeconds: DefaultTimeoutSeconds,
		ExportDir:      ".",
	}
}

// FromEnv builds a Config from environment variables. Unset variables leave
// their fields zero so later merging can fill them.
func FromEnv() *Config {
	return &Config{
		BaseURL:        getEnv(EnvBaseURL, ""),
		TimeoutSeconds: getEnvInt(EnvTimeout, 0),
		SessionID:      getEnv(EnvSessionID, ""),
		ExportDir:      getEnv(EnvExportDir, ""),
		Verbose:        getEnvBool(EnvVerbose, false),
	}
}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "BaseURL":
				return fmt.Errorf("config error: 'base_url' must be a valid URL, got %q", c.BaseURL)
			case "TimeoutSeconds":
				return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
			case "SessionID":
				return fmt.Errorf("config error: 'session_id' must be a UUID, got %q", c.SessionID)
			}
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from
// defaults. This is used to layer file values over environment values and
// built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.SessionID == "" {
		result.SessionID = defaults.SessionID
	}
	if result.ExportDir == "" {
		result.ExportDir = defaults.ExportDir
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)
	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
