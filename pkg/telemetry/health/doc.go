// Package health provides the gateway's liveness and readiness probes.
//
// # Endpoints
//
//   - /health: liveness, answers 200 while the process is serving
//   - /ready: readiness, runs every registered check and answers 503 if any fails
//   - /version: build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("backend", health.BackendCheck(client, collector))
//	checker.Register(mux, health.NewVersionInfo(version, commit, buildTime))
//
// The backend check treats any HTTP answer below 500 from the backend's
// health path as reachable.
package health
