// Package metrics provides Prometheus metrics collection for the PawHub gateway.
//
// # Metrics Categories
//
//   - Request metrics: inbound request count, duration and in-flight gauge,
//     labelled by the matched route pattern
//   - Backend metrics: backend call outcomes and latency, backend reachability,
//     OAuth configuration resolutions
//   - Cache metrics: query cache hits, misses, size and evictions
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.OptionsFromConfig(cfg.Telemetry.Metrics), nil)
//
//	client := backend.NewClient(backendCfg, backend.WithObserver(collector))
//	handler := collector.Middleware(mux)
//	mux.Handle("GET /metrics", collector.Handler())
//
// A nil *Collector records nothing, so callers do not need to guard each call
// when metrics are disabled.
//
// # Cardinality
//
// Route labels come from registered patterns, never raw paths. A
// CardinalityLimiter still caps distinct label sets at 1000; anything beyond
// that is folded into route="other".
package metrics
