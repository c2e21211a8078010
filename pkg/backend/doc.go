// Package backend forwards gateway requests to the PawHub backend service.
//
// # Overview
//
// Every /api route of the gateway is a thin translation of one request into a
// call against the backend origin. Client owns the HTTP transport, applies the
// configured per-request timeout and classifies each outcome:
//
//   - 2xx: a *Response carrying the status and raw body
//   - non-2xx: an *UpstreamError holding the status and a decoded ErrorBody
//   - context deadline: a *TimeoutError
//   - anything else (dial failure, broken body): a *TransportError
//
// No request is ever retried.
//
// # Basic Usage
//
//	client := backend.NewClient(backend.Config{
//	    BaseURL: "http://localhost:8080",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := client.Do(ctx, &backend.Request{
//	    Method:        http.MethodGet,
//	    Path:          "/api/diary",
//	    Authorization: r.Header.Get("Authorization"),
//	})
//
// # Multipart Relay
//
// Relay re-frames uploaded files into a fresh multipart body under the field
// names the backend expects. Bytes are copied through an io.Pipe while the
// request is in flight, never transformed.
//
//	resp, err := client.Relay(ctx, "/api/ai/predict-breed", auth, []backend.FilePart{
//	    backend.FilePartFromHeader("image", fh),
//	})
//
// # Error Bodies
//
// DecodeErrorBody tries JSON first and falls back to raw text. Message reduces
// either form to a single human-readable string.
package backend
