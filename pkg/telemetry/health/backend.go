package health

import (
	"context"
)

// Pinger probes a dependency. *backend.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Reporter receives the outcome of each backend probe. *metrics.Collector
// satisfies it.
type Reporter interface {
	UpdateBackendHealth(healthy bool)
}

// BackendCheck returns a check that pings the backend and, when reporter is
// non-nil, publishes the outcome.
func BackendCheck(p Pinger, reporter Reporter) CheckFunc {
	return func(ctx context.Context) error {
		err := p.Ping(ctx)
		if reporter != nil {
			reporter.UpdateBackendHealth(err == nil)
		}
		return err
	}
}
