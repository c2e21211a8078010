package tracing

import (
	"context"
	"net/http"

	"pawhub/gateway/pkg/telemetry/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader echoes the trace ID of a traced request.
const TraceIDHeader = "X-Trace-ID"

// propagator handles W3C traceparent/tracestate and baggage. It is used
// directly so that propagation does not depend on global initialization.
var propagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{},
	propagation.Baggage{},
)

// Propagator returns the gateway's text map propagator.
func Propagator() propagation.TextMapPropagator {
	return propagator
}

// Extract returns ctx with the trace context found in headers, if any.
func Extract(ctx context.Context, headers http.Header) context.Context {
	return propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// Inject writes the trace context of ctx into headers.
func Inject(ctx context.Context, headers http.Header) {
	propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// Middleware extracts inbound trace context and wraps the request in a server
// span. Handlers between it and the mux must pass the request through
// unchanged so that the matched pattern is visible once the handler returns;
// the span is then renamed to that pattern.
func Middleware(t *Tracer) func(http.Handler) http.Handler {
	if t == nil {
		t = Noop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := Extract(r.Context(), r.Header)
			ctx, span := t.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			SetServerAttributes(span, r.Method, r.URL.Path, logging.GetRequestID(ctx))
			if traceID := TraceID(ctx); traceID != "" {
				w.Header().Set(TraceIDHeader, traceID)
			}

			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			r = r.WithContext(ctx)
			next.ServeHTTP(sr, r)

			if r.Pattern != "" {
				span.SetName(r.Pattern)
				span.SetAttributes(attribute.String(AttrHTTPRoute, r.Pattern))
			}
			span.SetAttributes(attribute.Int(AttrHTTPStatusCode, sr.status))
			if sr.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(sr.status))
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
