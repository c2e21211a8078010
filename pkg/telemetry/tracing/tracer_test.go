package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhub/gateway/pkg/config"
	"pawhub/gateway/pkg/telemetry/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const inboundTraceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func newRecordingTracer(t *testing.T, sampler string) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tr, err := NewWithExporter(config.TracingConfig{Sampler: sampler, SampleRatio: 1}, "test", sdktrace.WithSyncer(exporter))
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNew_Disabled(t *testing.T) {
	tr, err := New(config.TracingConfig{}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Enabled() {
		t.Error("disabled config should yield a noop tracer")
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0.25, false},
		{"", 0.1, false},
		{SamplerRatio, 1.5, true},
		{SamplerRatio, -0.1, true},
		{"sometimes", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			s, err := newSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSampler(%q, %v) error = %v, wantErr %v", tt.strategy, tt.ratio, err, tt.wantErr)
			}
			if err == nil && s == nil {
				t.Error("expected a sampler")
			}
		})
	}
}

func TestMiddleware_RecordsServerSpan(t *testing.T) {
	tr, exporter := newRecordingTracer(t, SamplerAlways)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/diary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	handler := Middleware(tr)(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/diary", nil)
	req = req.WithContext(logging.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]

	if span.Name != "POST /api/diary" {
		t.Errorf("span name = %q", span.Name)
	}
	if span.SpanKind != trace.SpanKindServer {
		t.Errorf("span kind = %v", span.SpanKind)
	}
	if span.Status.Code != codes.Error {
		t.Errorf("status = %v, want Error for 502", span.Status.Code)
	}
	if v, ok := attrValue(span.Attributes, AttrHTTPStatusCode); !ok || v.AsInt64() != http.StatusBadGateway {
		t.Errorf("http.status_code = %v", v)
	}
	if v, ok := attrValue(span.Attributes, AttrRequestID); !ok || v.AsString() != "req-1" {
		t.Errorf("request id attribute = %v", v)
	}
	if rec.Header().Get(TraceIDHeader) != span.SpanContext.TraceID().String() {
		t.Errorf("X-Trace-ID = %q, want %s", rec.Header().Get(TraceIDHeader), span.SpanContext.TraceID())
	}
}

func TestMiddleware_ContinuesInboundTrace(t *testing.T) {
	tr, exporter := newRecordingTracer(t, SamplerNever)

	var forwarded http.Header
	handler := Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = http.Header{}
		Inject(r.Context(), forwarded)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/diary", nil)
	req.Header.Set("traceparent", inboundTraceparent)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("sampled parent should be followed despite the never sampler, got %d spans", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s", got)
	}
	if spans[0].Parent.SpanID().String() != "00f067aa0ba902b7" {
		t.Errorf("parent span id = %s", spans[0].Parent.SpanID())
	}

	got := forwarded.Get("traceparent")
	if len(got) != len(inboundTraceparent) || got[3:35] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("forwarded traceparent = %q", got)
	}
}

func TestMiddleware_NoopKeepsInboundContext(t *testing.T) {
	var forwarded http.Header
	handler := Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = http.Header{}
		Inject(r.Context(), forwarded)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/diary", nil)
	req.Header.Set("traceparent", inboundTraceparent)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := forwarded.Get("traceparent"); got != inboundTraceparent {
		t.Errorf("forwarded traceparent = %q, want %q", got, inboundTraceparent)
	}
	if rec.Header().Get(TraceIDHeader) != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("X-Trace-ID = %q", rec.Header().Get(TraceIDHeader))
	}
}

func TestMiddleware_WithoutTraceparent(t *testing.T) {
	handler := Middleware(Noop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TraceID(r.Context()) != "" {
			t.Error("noop tracer should not invent a trace id")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get(TraceIDHeader) != "" {
		t.Errorf("X-Trace-ID = %q, want empty", rec.Header().Get(TraceIDHeader))
	}
}

func TestSetStatus(t *testing.T) {
	tr, exporter := newRecordingTracer(t, SamplerAlways)

	_, span := tr.Start(context.Background(), "ok")
	SetStatus(span, nil)
	span.End()

	_, span = tr.Start(context.Background(), "failed")
	SetStatus(span, errors.New("backend unreachable"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans", len(spans))
	}
	if spans[0].Status.Code != codes.Unset {
		t.Errorf("nil error should leave status unset, got %v", spans[0].Status.Code)
	}
	if spans[1].Status.Code != codes.Error || spans[1].Status.Description != "backend unreachable" {
		t.Errorf("status = %+v", spans[1].Status)
	}
	if len(spans[1].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}
