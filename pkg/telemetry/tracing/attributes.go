package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. Gateway-specific keys live under "pawhub.".
const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.status_code"
	AttrURLPath        = "url.path"

	AttrRequestID     = "pawhub.request_id"
	AttrBackendRoute  = "pawhub.backend.route"
	AttrBackendPath   = "pawhub.backend.path"
	AttrBackendStatus = "pawhub.backend.status"
)

// SetServerAttributes describes an inbound request on its server span.
func SetServerAttributes(span trace.Span, method, path, requestID string) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrURLPath, path),
	}
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	span.SetAttributes(attrs...)
}

// SetBackendAttributes describes a forwarded call on its client span. A zero
// status is omitted; it means no response arrived.
func SetBackendAttributes(span trace.Span, route, path string, status int) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrBackendRoute, route),
		attribute.String(AttrBackendPath, path),
	}
	if status != 0 {
		attrs = append(attrs, attribute.Int(AttrBackendStatus, status))
	}
	span.SetAttributes(attrs...)
}
