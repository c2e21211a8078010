// Package telemetry groups the gateway's observability packages.
//
// # Components
//
//   - logging: slog setup with credential redaction and request ID stamping
//   - metrics: Prometheus collector for requests, backend calls and caches
//   - tracing: OpenTelemetry spans and W3C trace context propagation
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	if _, err := logging.Setup(logging.FromConfig(cfg.Telemetry.Logging)); err != nil {
//	    return err
//	}
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// # Redaction
//
// Log output never carries raw credentials:
//
//   - Bearer tokens: "Bearer abc" becomes "Bearer ***"
//   - JWTs anywhere in a value
//   - access_token, refresh_token, client_secret and code query values
//   - Emails: user@example.com becomes u***@example.com
package telemetry
