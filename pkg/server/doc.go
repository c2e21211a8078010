// Package server runs the PawHub gateway HTTP server.
//
// The server owns the gateway's long-lived collaborators: the backend client,
// the OAuth registry, the health checker and, when enabled, the metrics
// collector. It mounts the /api routes together with /health, /ready,
// /version and the metrics endpoint.
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("pawhub.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv := server.New(cfg, server.WithVersion(health.NewVersionInfo(version, commit, date)))
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until ctx is cancelled or Stop is called, then drains
// in-flight requests for up to server.shutdown_timeout.
//
// # Middleware Chain
//
//	Recovery → RequestID → Logging → CORS → Timeout → Tracing → Metrics → mux
//
// Request IDs are assigned before logging so that every log line of a request
// carries the same request_id.
package server
