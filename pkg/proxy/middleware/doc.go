// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server wraps its route mux in this order:
//
//	handler = Recovery(RequestID(Logging(CORS(Timeout(Metrics(mux))))))
//
// Order (outermost to innermost):
//  1. Recovery: recover from panics, answer 500
//  2. RequestID: assign the request ID before anything logs
//  3. Logging: log request/response with method, path, status, latency
//  4. CORS: add Cross-Origin Resource Sharing headers, answer preflights
//  5. Timeout: outer per-request deadline
//  6. Metrics (pkg/telemetry/metrics): sits directly on the mux so that it
//     can read the matched route pattern
//
// # Request ID
//
// RequestIDMiddleware stores the ID with logging.WithRequestID, so every
// slog call made with the request context carries it:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// # CORS
//
// CORS configuration comes from the server section:
//
//	server:
//	  cors:
//	    enabled: true
//	    allowed_origins: ["http://localhost:3000"]
//	    allowed_methods: ["GET", "POST", "OPTIONS"]
//	    allowed_headers: ["Authorization", "Content-Type", "X-Request-ID"]
//	    max_age: 3600
//
// # Recovery
//
// RecoveryMiddleware converts panics into
//
//	{"error": "Internal server error"}
//
// The stack trace is logged, never returned.
//
// # Timeout
//
// TimeoutMiddleware is a backstop. Backend calls are bounded by
// backend.timeout and fail first with the route's own 504 body.
package middleware
