package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pawhub/gateway/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// maxResponseBytes caps how much of a backend body is read into memory.
const maxResponseBytes = 16 << 20

// Outcome labels reported to an Observer.
const (
	OutcomeSuccess   = "success"
	OutcomeUpstream  = "upstream_error"
	OutcomeTransport = "transport_error"
	OutcomeTimeout   = "timeout"
)

// Config holds the backend connection settings.
type Config struct {
	// BaseURL is the backend origin, without a trailing slash.
	BaseURL string

	// Timeout bounds every backend call, including reading the body.
	Timeout time.Duration

	// HealthPath is probed by Ping.
	HealthPath string

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Observer receives the outcome of every backend call.
type Observer interface {
	ObserveBackend(route, outcome string, duration time.Duration)
}

// Tracer starts the client span around each backend call. Both trace.Tracer
// and *tracing.Tracer satisfy it.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver registers an observer for backend call outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithTracer sets the tracer for backend spans. The default is the global
// OpenTelemetry provider.
func WithTracer(t Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// Request describes one outbound backend call.
type Request struct {
	Method string

	// Path is appended to the backend origin.
	Path string

	Query url.Values

	// Authorization is copied verbatim, including when empty.
	Authorization string

	ContentType string
	Body        io.Reader

	// Route labels logs and metrics. Defaults to Path.
	Route string
}

// Response is a successful backend answer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	path string
}

// JSON returns the body as raw JSON, or a *ParseError when it is not valid JSON.
func (r *Response) JSON() (json.RawMessage, error) {
	if !json.Valid(r.Body) {
		return nil, &ParseError{
			Path:        r.path,
			RawResponse: string(r.Body),
			Cause:       errors.New("body is not valid JSON"),
		}
	}
	return json.RawMessage(r.Body), nil
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &ParseError{
			Path:        r.path,
			RawResponse: string(r.Body),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}
	return nil
}

// Text returns the body as trimmed plain text.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Body))
}

// Client forwards requests to the backend origin.
type Client struct {
	baseURL    string
	timeout    time.Duration
	healthPath string
	http       *http.Client
	observer   Observer
	tracer     Tracer
}

// NewClient creates a backend client with connection pooling.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 100
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 20
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		healthPath: cfg.HealthPath,
		// Timeouts come from the request context so that they apply per call.
		http:   &http.Client{Transport: transport},
		tracer: otel.Tracer(tracing.InstrumentationName + "/backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do sends req to the backend and classifies the outcome. Cancelling ctx
// cancels the backend call.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	route := req.Route
	if route == "" {
		route = req.Path
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "backend "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, req)
	c.observe(route, err, time.Since(start))

	tracing.SetBackendAttributes(span, route, req.Path, statusOf(resp, err))
	tracing.SetStatus(span, err)
	return resp, err
}

func statusOf(resp *Response, err error) int {
	var upErr *UpstreamError
	switch {
	case resp != nil:
		return resp.StatusCode
	case errors.As(err, &upErr):
		return upErr.StatusCode
	default:
		return 0
	}
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		if closer, ok := req.Body.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, &TransportError{Path: req.Path, Op: "build", Cause: err}
	}

	// Set directly so that an empty value is still sent.
	httpReq.Header["Authorization"] = []string{req.Authorization}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	tracing.Inject(ctx, httpReq.Header)

	slog.DebugContext(ctx, "sending request to backend",
		"method", req.Method,
		"path", req.Path,
	)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.classify(ctx, req.Path, "send", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.classify(ctx, req.Path, "read", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		upErr := &UpstreamError{
			Path:       req.Path,
			StatusCode: httpResp.StatusCode,
			Body:       DecodeErrorBody(body),
		}
		slog.WarnContext(ctx, "backend returned error status",
			"path", req.Path,
			"status", httpResp.StatusCode,
			"body_kind", upErr.Body.Kind.String(),
			"body", string(body),
		)
		return nil, upErr
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
		path:       req.Path,
	}, nil
}

// classify turns a transport failure into a *TimeoutError when the configured
// deadline expired, and a *TransportError otherwise.
func (c *Client) classify(ctx context.Context, path, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.WarnContext(ctx, "backend request timed out", "path", path, "timeout", c.timeout)
		return &TimeoutError{Path: path, Timeout: c.timeout}
	}
	slog.ErrorContext(ctx, "backend request failed", "path", path, "op", op, "error", err)
	return &TransportError{Path: path, Op: op, Cause: err}
}

func (c *Client) observe(route string, err error, d time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveBackend(route, Outcome(err), d)
}

// Outcome returns the observer label for the result of a backend call.
func Outcome(err error) string {
	var (
		upErr      *UpstreamError
		timeoutErr *TimeoutError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &upErr):
		return OutcomeUpstream
	case errors.As(err, &timeoutErr):
		return OutcomeTimeout
	default:
		return OutcomeTransport
	}
}

// Get forwards a GET with the given query.
func (c *Client) Get(ctx context.Context, path string, query url.Values, authorization string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:        http.MethodGet,
		Path:          path,
		Query:         query,
		Authorization: authorization,
	})
}

// PostJSON forwards body as a JSON POST.
func (c *Client) PostJSON(ctx context.Context, path string, body []byte, authorization string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:        http.MethodPost,
		Path:          path,
		Authorization: authorization,
		ContentType:   "application/json",
		Body:          bytes.NewReader(body),
	})
}

// Ping reports whether the backend answers its health path. Any status below
// 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   c.healthPath,
		Route:  "health",
	})
	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode < 500 {
		return nil
	}
	return err
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
