package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

// TimeoutMiddleware bounds the whole request with context.WithTimeout. When
// the deadline passes before the handler has answered, the client receives
// 504 {"error":"Request timed out"} and anything the handler writes afterwards
// is discarded. A client that disconnects first gets nothing written back.
//
// Backend calls carry their own, shorter timeout and answer in the route's
// own error shape; this is the outer guard for everything else.
//
// Example usage:
//
//	handler = TimeoutMiddleware(60 * time.Second)(handler)
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{w: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer close(done)
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				propagatePanic(panicked)
				if ctx.Err() == nil {
					tw.flush()
					return
				}
			case <-ctx.Done():
			}

			// The deadline or the client won. Whatever the handler writes from
			// here on is dropped, including output it produced while reacting
			// to ctx.Done.
			tw.timeout()

			if ctx.Err() != context.DeadlineExceeded {
				slog.DebugContext(r.Context(), "request cancelled by client",
					"method", r.Method,
					"path", r.URL.Path,
				)
				return
			}

			slog.WarnContext(r.Context(), "request timeout",
				"method", r.Method,
				"path", r.URL.Path,
				"timeout", timeout.String(),
			)
			proxy.WriteJSON(w, http.StatusGatewayTimeout, types.PlainError{Error: "Request timed out"})
		})
	}
}

func propagatePanic(panicked <-chan any) {
	select {
	case p := <-panicked:
		panic(p)
	default:
	}
}

// timeoutWriter buffers the handler's headers and status until it returns or
// the deadline passes, whichever comes first.
type timeoutWriter struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	header   http.Header
	status   int
	body     []byte
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.status != 0 {
		return
	}
	tw.status = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	tw.body = append(tw.body, b...)
	return len(b), nil
}

// timeout discards everything the handler writes from now on.
func (tw *timeoutWriter) timeout() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
}

func (tw *timeoutWriter) flush() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}

	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	tw.w.WriteHeader(tw.status)
	_, _ = tw.w.Write(tw.body)
}
