package metrics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pawhub/gateway/pkg/config"
)

// Collector owns every Prometheus metric of the gateway. A nil *Collector is
// valid and records nothing, so components can take one unconditionally.
type Collector struct {
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	backendMetrics *BackendMetrics
	cacheMetrics   *CacheMetrics

	cardinalityLimiter *CardinalityLimiter
}

// Options tunes a Collector.
type Options struct {
	Namespace string
	Subsystem string

	// DurationBuckets are used for both inbound and backend latency.
	DurationBuckets []float64

	// RuntimeCollectors adds the Go runtime and process collectors.
	RuntimeCollectors bool
}

// OptionsFromConfig converts the metrics configuration section.
func OptionsFromConfig(cfg config.MetricsConfig) Options {
	return Options{
		Namespace:         cfg.Namespace,
		Subsystem:         cfg.Subsystem,
		RuntimeCollectors: true,
	}
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(metrics.OptionsFromConfig(cfg.Telemetry.Metrics), nil)
func NewCollector(opts Options, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if opts.Namespace == "" {
		opts.Namespace = config.DefaultMetricsNamespace
	}
	if opts.Subsystem == "" {
		opts.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(opts.DurationBuckets) == 0 {
		// Proxied calls range from a few ms (diary) to tens of seconds (AI inference).
		opts.DurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
	}

	if opts.RuntimeCollectors {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Collector{
		registry:           registry,
		requestMetrics:     NewRequestMetrics(opts, registry),
		backendMetrics:     NewBackendMetrics(opts, registry),
		cacheMetrics:       NewCacheMetrics(opts, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// RecordRequest records a completed inbound request. route is the matched
// route pattern; unmatched requests should pass "unmatched".
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	if c == nil {
		return
	}

	if !c.cardinalityLimiter.Allow(fmt.Sprintf("request:%s:%s", route, method)) {
		route = "other"
	}

	c.requestMetrics.RecordRequest(route, method, strconv.Itoa(status), duration)
}

// ObserveBackend records the outcome of a backend call. It satisfies
// backend.Observer.
func (c *Collector) ObserveBackend(route, outcome string, duration time.Duration) {
	if c == nil {
		return
	}

	if !c.cardinalityLimiter.Allow("backend:" + route) {
		route = "other"
	}

	c.backendMetrics.RecordCall(route, outcome, duration)
}

// UpdateBackendHealth sets the backend reachability gauge.
func (c *Collector) UpdateBackendHealth(healthy bool) {
	if c == nil {
		return
	}
	c.backendMetrics.UpdateHealth(healthy)
}

// RecordOAuthConfigLoad records how the OAuth client ids were resolved:
// "loaded" from the source, or "fallback" to the placeholders.
func (c *Collector) RecordOAuthConfigLoad(result string) {
	if c == nil {
		return
	}
	c.backendMetrics.RecordOAuthConfigLoad(result)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if c == nil {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if c == nil {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records evicted cache entries.
func (c *Collector) RecordCacheEviction(cacheName string, n int) {
	if c == nil {
		return
	}
	c.cacheMetrics.RecordEvictions(cacheName, n)
}

// UpdateCacheSize updates the current size of a cache.
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if c == nil {
		return
	}
	c.cacheMetrics.UpdateSize(cacheName, size)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet may be recorded. Known label sets are always
// allowed; new ones only while the limit has not been reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
