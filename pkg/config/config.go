package config

import "time"

// Config is the root configuration structure for the PawHub gateway.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and CORS.
	Server ServerConfig `yaml:"server"`

	// Backend describes the upstream service every /api route forwards to.
	Backend BackendConfig `yaml:"backend"`

	// OAuth holds the server-side client identifiers for the supported
	// identity providers.
	OAuth OAuthConfig `yaml:"oauth"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the gateway HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the gateway to listen on.
	// Default: "127.0.0.1:3000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Multipart uploads count against it.
	// Default: 60s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 60s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`

	// TLS enables HTTPS termination on the listener.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig configures TLS termination. Certificates are re-read from disk
// when their modification time changes.
type TLSConfig struct {
	// Enabled switches the listener to HTTPS.
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM-encoded certificate chain.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded private key.
	KeyFile string `yaml:"key_file"`

	// MinVersion is "1.2" or "1.3".
	// Default: "1.2"
	MinVersion string `yaml:"min_version"`

	// ReloadInterval is how often the certificate files are checked.
	// Default: 5m
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins. ["*"] allows all.
	// Default: ["http://localhost:3000"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed request headers.
	// Default: ["Authorization", "Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of headers exposed to the browser.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed.
	AllowCredentials bool `yaml:"allow_credentials"`
}

// BackendConfig describes the upstream backend service.
type BackendConfig struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	// BACKEND_URL and NEXT_PUBLIC_BACKEND_URL override it, in that order.
	// Default: "http://localhost:8080"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every forwarded request. Expiry is reported to the
	// caller as 504.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxUploadBytes caps the inbound multipart body size for relay routes.
	// Default: 33554432 (32MB)
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// HealthPath is probed by the readiness check.
	// Default: "/actuator/health"
	HealthPath string `yaml:"health_path"`
}

// OAuthConfig holds the OAuth client identifiers per provider.
// Empty values are allowed; the OAuth registry substitutes placeholders.
type OAuthConfig struct {
	GoogleClientID string `yaml:"google_client_id"`
	KakaoClientID  string `yaml:"kakao_client_id"`
	NaverClientID  string `yaml:"naver_client_id"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the process-wide slog logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and /metrics is served.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is where the metrics endpoint is mounted.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "pawhub"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`
}

// IsEnabled reports whether metrics collection is enabled.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// TracingConfig configures OpenTelemetry tracing. Incoming W3C trace context
// is always honored and forwarded to the backend; spans are exported only when
// Enabled is set.
type TracingConfig struct {
	// Enabled controls whether spans are recorded and exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler is one of "always", "never", "ratio".
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of root traces sampled by the "ratio" sampler.
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is reported as service.name.
	// Default: "pawhub-gateway"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
