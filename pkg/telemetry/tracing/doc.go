// Package tracing provides OpenTelemetry tracing for the PawHub gateway.
//
// # Overview
//
// Every inbound request gets a server span, and every call the gateway makes
// to the backend gets a client span beneath it. W3C Trace Context
// (traceparent, tracestate) is extracted from the browser request and injected
// into the backend request, so a trace started by the frontend continues
// through the gateway into the backend.
//
// Propagation works even when tracing is disabled: the noop tracer keeps the
// inbound span context, and the backend still receives the caller's
// traceparent.
//
// # Span Hierarchy
//
//	POST /api/ai/predict-breed        (server, named after the mux pattern)
//	└── backend ai.predict-breed      (client)
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio        # always, never, ratio
//	    sample_ratio: 0.1
//	    endpoint: localhost:4317
//	    insecure: true
//
// Spans are exported over OTLP/gRPC. Samplers are parent-based, so a sampled
// inbound traceparent is always recorded.
//
// # Usage
//
//	tracer, err := tracing.New(cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	handler = tracing.Middleware(tracer)(handler)
package tracing
