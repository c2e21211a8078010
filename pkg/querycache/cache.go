package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FetchFunc loads the value for a key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Observer receives cache activity. *metrics.Collector satisfies it.
type Observer interface {
	RecordCacheHit(cacheName string)
	RecordCacheMiss(cacheName string)
	RecordCacheEviction(cacheName string, n int)
	UpdateCacheSize(cacheName string, size int)
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	observer Observer
	now      func() time.Time
}

// WithObserver reports hits, misses, evictions and size to o.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(opts *options) { opts.now = now }
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
	usedAt    time.Time
}

type call[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Cache stores query results by key according to a Policy. It is safe for
// concurrent use; concurrent misses on one key share a single fetch.
type Cache[T any] struct {
	name   string
	policy Policy
	opts   options

	mu       sync.Mutex
	entries  map[string]*entry[T]
	inflight map[string]*call[T]
}

// New creates a named cache applying policy.
func New[T any](name string, policy Policy, opts ...Option) *Cache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		name:     name,
		policy:   policy,
		opts:     o,
		entries:  make(map[string]*entry[T]),
		inflight: make(map[string]*call[T]),
	}
}

// Policy returns the policy the cache applies.
func (c *Cache[T]) Policy() Policy {
	return c.policy
}

// Get returns the cached value for key while it is fresh. Otherwise it calls
// fetch, retrying up to Policy.Retry times, and caches the result. A failed
// fetch leaves any previous entry untouched.
func (c *Cache[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) (T, error) {
	now := c.opts.now()

	c.mu.Lock()
	evicted := c.sweepLocked(now)
	if e, ok := c.entries[key]; ok && now.Sub(e.fetchedAt) < c.policy.staleTime {
		e.usedAt = now
		value := e.value
		size := len(c.entries)
		c.mu.Unlock()
		c.report(evicted, size)
		c.hit()
		return value, nil
	}
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		c.report(evicted, -1)
		return c.wait(ctx, cl)
	}
	cl := &call[T]{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	c.report(evicted, -1)
	c.miss()

	cl.value, cl.err = c.fetch(ctx, fetch)

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil {
		at := c.opts.now()
		c.entries[key] = &entry[T]{value: cl.value, fetchedAt: at, usedAt: at}
	}
	size := len(c.entries)
	c.mu.Unlock()
	close(cl.done)

	c.report(0, size)
	return cl.value, cl.err
}

func (c *Cache[T]) fetch(ctx context.Context, fetch FetchFunc[T]) (T, error) {
	var (
		value T
		err   error
	)
	for attempt := 0; attempt <= c.policy.retry; attempt++ {
		value, err = fetch(ctx)
		if err == nil {
			return value, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	var zero T
	return zero, fmt.Errorf("query %s: %w", c.name, err)
}

func (c *Cache[T]) wait(ctx context.Context, cl *call[T]) (T, error) {
	select {
	case <-cl.done:
		return cl.value, cl.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Invalidate drops key so the next Get fetches.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()
	c.report(0, size)
}

// Sweep evicts entries unused for longer than Policy.GCTime and returns how
// many were removed. Get also sweeps lazily.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	n := c.sweepLocked(c.opts.now())
	size := len(c.entries)
	c.mu.Unlock()
	c.report(n, size)
	return n
}

// Len returns the number of cached entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) sweepLocked(now time.Time) int {
	n := 0
	for key, e := range c.entries {
		if now.Sub(e.usedAt) > c.policy.gcTime {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

func (c *Cache[T]) hit() {
	if c.opts.observer != nil {
		c.opts.observer.RecordCacheHit(c.name)
	}
}

func (c *Cache[T]) miss() {
	if c.opts.observer != nil {
		c.opts.observer.RecordCacheMiss(c.name)
	}
}

// report publishes evictions and, when size is not negative, the cache size.
func (c *Cache[T]) report(evicted, size int) {
	if c.opts.observer == nil {
		return
	}
	if evicted > 0 {
		c.opts.observer.RecordCacheEviction(c.name, evicted)
	}
	if size >= 0 {
		c.opts.observer.UpdateCacheSize(c.name, size)
	}
}
