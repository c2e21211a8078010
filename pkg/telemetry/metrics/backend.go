package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics tracks calls from the gateway to the application backend.
//
// Metrics:
//   - pawhub_gateway_backend_requests_total: backend calls by route and outcome
//   - pawhub_gateway_backend_latency_seconds: backend call latency by route
//   - pawhub_gateway_backend_up: 1 when the last health probe reached the backend
//   - pawhub_gateway_oauth_config_loads_total: OAuth client id resolutions by result
type BackendMetrics struct {
	requestsTotal *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	up            prometheus.Gauge
	oauthLoads    *prometheus.CounterVec
}

// NewBackendMetrics creates and registers backend metrics with the provided registry.
func NewBackendMetrics(opts Options, registry *prometheus.Registry) *BackendMetrics {
	bm := &BackendMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "backend_requests_total",
				Help:      "Total number of backend calls by outcome",
			},
			[]string{"route", "outcome"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "backend_latency_seconds",
				Help:      "Latency of backend calls in seconds",
				Buckets:   opts.DurationBuckets,
			},
			[]string{"route"},
		),

		up: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "backend_up",
				Help:      "Backend reachability (1 = reachable, 0 = unreachable)",
			},
		),

		oauthLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "oauth_config_loads_total",
				Help:      "Total number of OAuth configuration resolutions by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		bm.requestsTotal,
		bm.latency,
		bm.up,
		bm.oauthLoads,
	)

	return bm
}

// RecordCall records one backend call. outcome is one of the backend
// package's Outcome constants.
func (bm *BackendMetrics) RecordCall(route, outcome string, duration time.Duration) {
	bm.requestsTotal.WithLabelValues(route, outcome).Inc()
	bm.latency.WithLabelValues(route).Observe(duration.Seconds())
}

// UpdateHealth sets the reachability gauge.
func (bm *BackendMetrics) UpdateHealth(healthy bool) {
	if healthy {
		bm.up.Set(1)
		return
	}
	bm.up.Set(0)
}

// RecordOAuthConfigLoad counts one OAuth configuration resolution.
func (bm *BackendMetrics) RecordOAuthConfigLoad(result string) {
	bm.oauthLoads.WithLabelValues(result).Inc()
}
