// Package config provides YAML configuration loading and validation for the
// DBOptima dashboard server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "500ms" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the top-level configuration structure for the dashboard server.
type Config struct {
	// HTTPAddr is the listen address for the REST API and WebSocket stream
	// (e.g. ":8080"). Defaults to ":8080" when omitted.
	HTTPAddr string `yaml:"http_addr"`

	// JWTSecret is the HMAC secret used to sign and verify session tokens.
	// Required; there is no development fallback.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is how long issued tokens stay valid. Defaults to 168h
	// (seven days) when omitted.
	TokenTTL Duration `yaml:"token_ttl"`

	// TaskDelay is how long simulated background jobs (index scans, report
	// generation, query analysis) take before completing. Defaults to 2s.
	// Set very low in test environments.
	TaskDelay Duration `yaml:"task_delay"`

	// ActivityPath is the SQLite database file backing the activity feed.
	// Defaults to ":memory:", which keeps the feed for the process lifetime
	// only.
	ActivityPath string `yaml:"activity_path"`

	// AuditPath is the hash-chained audit log file. Empty disables the
	// audit trail.
	AuditPath string `yaml:"audit_path"`

	// LogLevel sets the minimum log severity: "debug", "info", "warn", or
	// "error". Defaults to "info" when omitted.
	LogLevel string `yaml:"log_level"`
}

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoadConfig reads the YAML file at path, unmarshals it into Config, applies
// defaults, and validates all required fields. It returns a typed error
// describing every validation failure encountered.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: cannot parse %q: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed for %q: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero-value optional fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = Duration(168 * time.Hour)
	}
	if cfg.TaskDelay == 0 {
		cfg.TaskDelay = Duration(2 * time.Second)
	}
	if cfg.ActivityPath == "" {
		cfg.ActivityPath = ":memory:"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks that all required fields are populated and that enumerated
// fields contain only valid values.
func validate(cfg *Config) error {
	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	}
	if cfg.TokenTTL < 0 {
		errs = append(errs, errors.New("token_ttl must not be negative"))
	}
	if cfg.TaskDelay < 0 {
		errs = append(errs, errors.New("task_delay must not be negative"))
	}
	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q must be one of: debug, info, warn, error", cfg.LogLevel))
	}

	return errors.Join(errs...)
}
