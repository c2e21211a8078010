// Package client is a Go consumer of the gateway's /api surface.
//
// Reads go through a querycache.Cache that applies the shared default policy,
// OAuth URLs are built from the gateway's published client ids, and the
// session triple obtained at login authorizes later calls.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/oauth"
	"pawhub/gateway/pkg/querycache"
)

// DiaryCacheName labels the diary cache in metrics.
const DiaryCacheName = "diaries"

// Gateway paths used by the client.
const (
	diaryPath    = "/api/diary"
	callbackPath = "/api/auth/callback"
)

// Config holds the gateway connection settings.
type Config struct {
	// GatewayURL is the gateway origin, e.g. "http://localhost:3000".
	GatewayURL string

	// Timeout bounds every call. Default: 30s.
	Timeout time.Duration
}

// Option configures a Client.
type Option func(*options)

type options struct {
	observer querycache.Observer
	clock    func() time.Time
}

// WithCacheObserver reports query cache activity to o.
func WithCacheObserver(o querycache.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithClock replaces time.Now for the query cache.
func WithClock(now func() time.Time) Option {
	return func(opts *options) { opts.clock = now }
}

// Client talks to a running gateway.
type Client struct {
	gateway *backend.Client
	oauth   *oauth.Registry
	diaries *querycache.Cache[json.RawMessage]

	mu      sync.RWMutex
	session oauth.Session
}

// New creates a client for the gateway at cfg.GatewayURL.
func New(cfg Config, opts ...Option) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var cacheOpts []querycache.Option
	if o.observer != nil {
		cacheOpts = append(cacheOpts, querycache.WithObserver(o.observer))
	}
	if o.clock != nil {
		cacheOpts = append(cacheOpts, querycache.WithClock(o.clock))
	}

	gw := backend.NewClient(backend.Config{
		BaseURL:    cfg.GatewayURL,
		Timeout:    cfg.Timeout,
		HealthPath: "/health",
	})

	return &Client{
		gateway: gw,
		oauth:   oauth.NewRegistry(oauth.NewHTTPSource(gw)),
		diaries: querycache.New[json.RawMessage](DiaryCacheName, querycache.DefaultPolicy(), cacheOpts...),
	}
}

// SetSession stores the session used to authorize calls.
func (c *Client) SetSession(s oauth.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// Session returns the current session. The zero value means logged out.
func (c *Client) Session() oauth.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ClearSession logs out.
func (c *Client) ClearSession() {
	c.SetSession(oauth.Session{})
}

func (c *Client) authorization() string {
	s := c.Session()
	if s.AccessToken == "" {
		return ""
	}
	return "Bearer " + s.AccessToken
}

// Policy returns the query cache policy applied to reads.
func (c *Client) Policy() querycache.Policy {
	return c.diaries.Policy()
}

// OAuthURL builds the authorization URL for the named provider from the
// gateway's published client ids. An unreachable gateway yields the
// placeholder ids, as in the browser.
func (c *Client) OAuthURL(ctx context.Context, provider string) (string, error) {
	p, err := oauth.ParseProvider(provider)
	if err != nil {
		return "", err
	}
	return c.oauth.BuildAuthURL(ctx, p)
}

// Login completes the callback with code and stores the returned session.
func (c *Client) Login(ctx context.Context, code string) (oauth.Session, error) {
	resp, err := c.gateway.Do(ctx, &backend.Request{
		Method: http.MethodGet,
		Path:   callbackPath,
		Query:  url.Values{"code": {code}},
		Route:  "auth.callback",
	})
	if err != nil {
		return oauth.Session{}, fmt.Errorf("login: %w", err)
	}

	var s oauth.Session
	if err := resp.Decode(&s); err != nil {
		return oauth.Session{}, fmt.Errorf("login: %w", err)
	}
	c.SetSession(s)
	return s, nil
}

// Diaries lists diary entries, for one user when userID is set. Results are
// served from the query cache while fresh.
func (c *Client) Diaries(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.diaries.Get(ctx, diaryKey(userID), func(ctx context.Context) (json.RawMessage, error) {
		var query url.Values
		if userID != "" {
			query = url.Values{"userId": {userID}}
		}
		resp, err := c.gateway.Do(ctx, &backend.Request{
			Method:        http.MethodGet,
			Path:          diaryPath,
			Query:         query,
			Authorization: c.authorization(),
			Route:         "diary.list",
		})
		if err != nil {
			return nil, err
		}
		return resp.JSON()
	})
}

// CreateDiary posts a diary entry and drops the cached listings it affects.
func (c *Client) CreateDiary(ctx context.Context, entry json.RawMessage) (json.RawMessage, error) {
	resp, err := c.gateway.PostJSON(ctx, diaryPath, entry, c.authorization())
	if err != nil {
		return nil, fmt.Errorf("create diary: %w", err)
	}

	c.diaries.Invalidate(diaryKey(""))
	if uid := c.Session().UserID; uid != "" {
		c.diaries.Invalidate(diaryKey(uid))
	}
	return resp.JSON()
}

// Sweep evicts cache entries past the policy's gcTime.
func (c *Client) Sweep() int {
	return c.diaries.Sweep()
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.gateway.Close()
}

func diaryKey(userID string) string {
	if userID == "" {
		return "diary:all"
	}
	return "diary:user:" + userID
}
