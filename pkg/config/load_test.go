package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pawhub.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:3000"
  read_timeout: "90s"

backend:
  base_url: "https://api.pawhub.test"
  timeout: "5s"

oauth:
  google_client_id: "google-123"

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:3000" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:3000", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 90*time.Second {
		t.Errorf("expected read timeout %v, got %v", 90*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Backend.BaseURL != "https://api.pawhub.test" {
		t.Errorf("expected base URL %q, got %q", "https://api.pawhub.test", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("expected backend timeout %v, got %v", 5*time.Second, cfg.Backend.Timeout)
	}
	if cfg.OAuth.GoogleClientID != "google-123" {
		t.Errorf("expected google client id %q, got %q", "google-123", cfg.OAuth.GoogleClientID)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Server.CORS.Enabled {
		t.Error("expected CORS to stay enabled when the file does not mention it")
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Backend.BaseURL != DefaultBackendURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Backend.BaseURL, DefaultBackendURL)
	}
	if cfg.Backend.Timeout != DefaultBackendTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Backend.Timeout, DefaultBackendTimeout)
	}
	if !cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should be enabled by default")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/pawhub.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:3000"
  invalid yaml here: [
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "localhost:8080"
telemetry:
  logging:
    level: "verbose"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(valErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(valErr.Errors), valErr.Errors)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.internal:9000/")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://ignored:1")
	t.Setenv("GOOGLE_CLIENT_ID", "g-env")
	t.Setenv("KAKAO_CLIENT_ID", "k-env")
	t.Setenv("NAVER_CLIENT_ID", "n-env")
	t.Setenv("PAWHUB_BACKEND_TIMEOUT", "12s")
	t.Setenv("PAWHUB_LOG_LEVEL", "warn")
	t.Setenv("PAWHUB_METRICS_ENABLED", "false")
	t.Setenv("PAWHUB_TRACING_ENABLED", "true")
	t.Setenv("PAWHUB_TRACING_ENDPOINT", "otel-collector:4317")
	t.Setenv("PAWHUB_SERVER_CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://backend.internal:9000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed BACKEND_URL", cfg.Backend.BaseURL)
	}
	if cfg.OAuth.GoogleClientID != "g-env" || cfg.OAuth.KakaoClientID != "k-env" || cfg.OAuth.NaverClientID != "n-env" {
		t.Errorf("unexpected OAuth client ids: %+v", cfg.OAuth)
	}
	if cfg.Backend.Timeout != 12*time.Second {
		t.Errorf("Timeout = %v, want 12s", cfg.Backend.Timeout)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by PAWHUB_METRICS_ENABLED=false")
	}
	if !cfg.Telemetry.Tracing.Enabled || cfg.Telemetry.Tracing.Endpoint != "otel-collector:4317" {
		t.Errorf("unexpected tracing config: %+v", cfg.Telemetry.Tracing)
	}
	if got := strings.Join(cfg.Server.CORS.AllowedOrigins, "|"); got != "https://a.test|https://b.test" {
		t.Errorf("AllowedOrigins = %q", got)
	}
}

func TestLoadConfigWithEnvOverrides_PublicBackendURLFallback(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "https://public.pawhub.test")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}
	if cfg.Backend.BaseURL != "https://public.pawhub.test" {
		t.Errorf("BaseURL = %q, want NEXT_PUBLIC_BACKEND_URL", cfg.Backend.BaseURL)
	}
}

func TestLoadConfigWithEnvOverrides_MissingFileTolerated(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "")

	cfg, err := LoadConfigWithEnvOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected missing file to fall back to defaults, got %v", err)
	}
	if cfg.Backend.BaseURL != DefaultBackendURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Backend.BaseURL, DefaultBackendURL)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("BACKEND_URL", "ftp://files.pawhub.test")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error for ftp backend URL")
	}
	if !strings.Contains(err.Error(), "backend.base_url") {
		t.Errorf("error should name backend.base_url, got %v", err)
	}
}
