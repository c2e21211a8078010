// Package querycache holds the query cache policy shared by every data
// fetching call site, and a small keyed cache that applies it.
package querycache

import "time"

// Policy governs every cached query uniformly. It has no mutators; use
// DefaultPolicy to obtain the shared value.
type Policy struct {
	staleTime            time.Duration
	gcTime               time.Duration
	retry                int
	refetchOnWindowFocus bool
	refetchOnMount       bool
}

var defaultPolicy = Policy{
	staleTime:            5 * time.Minute,
	gcTime:               10 * time.Minute,
	retry:                1,
	refetchOnWindowFocus: false,
	refetchOnMount:       false,
}

// DefaultPolicy returns the process-wide policy.
func DefaultPolicy() Policy {
	return defaultPolicy
}

// StaleTime is how long a cached result is fresh.
func (p Policy) StaleTime() time.Duration { return p.staleTime }

// GCTime is how long an unused entry survives before eviction.
func (p Policy) GCTime() time.Duration { return p.gcTime }

// Retry is the number of automatic retries after a failed fetch.
func (p Policy) Retry() int { return p.retry }

// RefetchOnWindowFocus reports whether regaining focus refetches.
func (p Policy) RefetchOnWindowFocus() bool { return p.refetchOnWindowFocus }

// RefetchOnMount reports whether remounting a consumer refetches.
func (p Policy) RefetchOnMount() bool { return p.refetchOnMount }

// StaleTimeMS returns StaleTime in milliseconds.
func (p Policy) StaleTimeMS() int64 { return p.staleTime.Milliseconds() }

// GCTimeMS returns GCTime in milliseconds.
func (p Policy) GCTimeMS() int64 { return p.gcTime.Milliseconds() }
