package backend

import (
	"fmt"
	"net/http"
	"time"
)

// UpstreamError represents a non-2xx answer from the backend.
type UpstreamError struct {
	// Path is the backend path that was called
	Path string

	// StatusCode is the HTTP status returned by the backend
	StatusCode int

	// Body is the decoded error body
	Body ErrorBody
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend %s returned status %d: %s", e.Path, e.StatusCode, e.Message())
}

// Message returns a non-empty, human-readable description of the failure.
// It prefers the backend's own message and falls back to the status text.
func (e *UpstreamError) Message() string {
	if msg := e.Body.Message(); msg != "" {
		return msg
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
}

// TransportError represents a failure to reach the backend or to read its answer.
type TransportError struct {
	// Path is the backend path that was called
	Path string

	// Op names the step that failed ("build", "send", "read")
	Op string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s %s failed: %v", e.Path, e.Op, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents a backend call that exceeded the configured timeout.
type TimeoutError struct {
	// Path is the backend path that was called
	Path string

	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("backend %s request timeout after %s", e.Path, e.Timeout)
}

// ParseError represents a 2xx backend body that could not be decoded.
type ParseError struct {
	// Path is the backend path that was called
	Path string

	// RawResponse is the body that failed to parse
	RawResponse string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("backend %s response parse error: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
