package oauth

import (
	"context"
	"log/slog"
	"sync"
)

// Load results passed to a LoadRecorder.
const (
	LoadResultLoaded   = "loaded"
	LoadResultFallback = "fallback"
)

// Source resolves provider client ids.
type Source interface {
	ClientIDs(ctx context.Context) (ClientIDs, error)
}

// LoadRecorder is told how the client ids were resolved. *metrics.Collector
// satisfies it.
type LoadRecorder interface {
	RecordOAuthConfigLoad(result string)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLoadRecorder reports the resolution result to r.
func WithLoadRecorder(r LoadRecorder) RegistryOption {
	return func(reg *Registry) { reg.recorder = r }
}

// WithLogger sets the logger used to report a fallback.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) { reg.logger = l }
}

// slot is a single-assignment cell for the resolved client ids.
type slot struct {
	once sync.Once
	ids  ClientIDs
}

// Registry memoizes the provider configuration for its lifetime.
type Registry struct {
	source   Source
	recorder LoadRecorder
	logger   *slog.Logger

	mu   sync.Mutex
	slot *slot
}

// NewRegistry creates a registry that resolves client ids from source on
// first use.
func NewRegistry(source Source, opts ...RegistryOption) *Registry {
	r := &Registry{
		source: source,
		logger: slog.Default(),
		slot:   &slot{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClientIDs returns the memoized client ids, resolving them on the first call.
// The first caller's ctx bounds the fetch; later callers wait for it.
func (r *Registry) ClientIDs(ctx context.Context) ClientIDs {
	r.mu.Lock()
	s := r.slot
	r.mu.Unlock()

	s.once.Do(func() {
		s.ids = r.load(ctx)
	})
	return s.ids
}

func (r *Registry) load(ctx context.Context) ClientIDs {
	ids, err := r.source.ClientIDs(ctx)
	if err != nil {
		r.logger.Warn("failed to load oauth config, using placeholder client ids",
			"error", err,
		)
		r.record(LoadResultFallback)
		return FallbackClientIDs
	}

	r.record(LoadResultLoaded)
	return ids
}

func (r *Registry) record(result string) {
	if r.recorder != nil {
		r.recorder.RecordOAuthConfigLoad(result)
	}
}

// Configs returns one ProviderConfig per provider.
func (r *Registry) Configs(ctx context.Context) map[Provider]ProviderConfig {
	return r.ClientIDs(ctx).Configs()
}

// Config returns the configuration of a single provider.
func (r *Registry) Config(ctx context.Context, p Provider) (ProviderConfig, error) {
	if _, err := ParseProvider(string(p)); err != nil {
		return ProviderConfig{}, err
	}
	return r.Configs(ctx)[p], nil
}

// BuildAuthURL returns the authorization URL of provider p.
func (r *Registry) BuildAuthURL(ctx context.Context, p Provider) (string, error) {
	pc, err := r.Config(ctx, p)
	if err != nil {
		return "", err
	}
	return pc.AuthURL(), nil
}

// Reset discards the memoized client ids so the next call fetches again.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.slot = &slot{}
	r.mu.Unlock()
}
