package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingtech/dboptima/internal/config"
)

// writeTemp writes content to a temp file and returns its path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	f.Close()
	return f.Name()
}

const validYAML = `
http_addr: "127.0.0.1:9090"
jwt_secret: "not-a-real-secret"
token_ttl: 24h
task_delay: 500ms
activity_path: "/var/lib/dboptima/activity.db"
audit_path: "/var/log/dboptima/audit.log"
log_level: debug
`

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTemp(t, validYAML)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != "127.0.0.1:9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9090")
	}
	if cfg.JWTSecret != "not-a-real-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL.Std() != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL.Std())
	}
	if cfg.TaskDelay.Std() != 500*time.Millisecond {
		t.Errorf("TaskDelay = %v, want 500ms", cfg.TaskDelay.Std())
	}
	if cfg.ActivityPath != "/var/lib/dboptima/activity.db" {
		t.Errorf("ActivityPath = %q", cfg.ActivityPath)
	}
	if cfg.AuditPath != "/var/log/dboptima/audit.log" {
		t.Errorf("AuditPath = %q", cfg.AuditPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Omit everything optional to exercise default application.
	yaml := `
jwt_secret: "not-a-real-secret"
`
	path := writeTemp(t, yaml)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("default HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.TokenTTL.Std() != 168*time.Hour {
		t.Errorf("default TokenTTL = %v, want 168h", cfg.TokenTTL.Std())
	}
	if cfg.TaskDelay.Std() != 2*time.Second {
		t.Errorf("default TaskDelay = %v, want 2s", cfg.TaskDelay.Std())
	}
	if cfg.ActivityPath != ":memory:" {
		t.Errorf("default ActivityPath = %q, want %q", cfg.ActivityPath, ":memory:")
	}
	if cfg.AuditPath != "" {
		t.Errorf("default AuditPath = %q, want empty", cfg.AuditPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	yaml := `
http_addr: ":8080"
`
	path := writeTemp(t, yaml)
	_, err := config.LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for missing jwt_secret, got nil")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error %q does not mention jwt_secret", err.Error())
	}
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	yaml := `
jwt_secret: "not-a-real-secret"
log_level: "verbose"
`
	path := writeTemp(t, yaml)
	_, err := config.LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid log_level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error %q does not mention log_level", err.Error())
	}
}

func TestLoadConfig_NegativeDurations(t *testing.T) {
	yaml := `
jwt_secret: "not-a-real-secret"
token_ttl: -1h
task_delay: -5s
`
	path := writeTemp(t, yaml)
	_, err := config.LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for negative durations, got nil")
	}
	if !strings.Contains(err.Error(), "token_ttl") {
		t.Errorf("error %q does not mention token_ttl", err.Error())
	}
	if !strings.Contains(err.Error(), "task_delay") {
		t.Errorf("error %q does not mention task_delay", err.Error())
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "nonexistent.yaml")
	_, err := config.LoadConfig(missingPath)
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTemp(t, ":::invalid yaml:::")
	_, err := config.LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}
