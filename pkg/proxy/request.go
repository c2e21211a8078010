package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"pawhub/gateway/pkg/proxy/types"
)

const (
	// MaxJSONBodySize is the maximum accepted JSON request body (1MB).
	MaxJSONBodySize = 1 << 20

	// AuthorizationHeader carries the caller's bearer token.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"

	// multipartMemory is how much of a multipart form is kept in memory before
	// spilling to temporary files.
	multipartMemory = 8 << 20
)

// Authorization returns the inbound Authorization header verbatim, or "" when
// absent.
func Authorization(r *http.Request) string {
	return r.Header.Get(AuthorizationHeader)
}

// ReadJSONBody reads a JSON request body. A missing, oversized or malformed
// body yields a *RequestError with CodeInvalidBody.
func ReadJSONBody(r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, invalidBody("request body is required")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MaxJSONBodySize {
		return nil, invalidBody(fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxJSONBodySize))
	}
	if len(body) == 0 {
		return nil, invalidBody("request body is required")
	}
	if !json.Valid(body) {
		return nil, invalidBody("request body is not valid JSON")
	}

	return json.RawMessage(body), nil
}

func invalidBody(msg string) *RequestError {
	return &RequestError{Message: msg, Code: types.CodeInvalidBody, Param: "body"}
}

// FormFiles parses the multipart form of r, bounded by maxBytes, and returns
// the first file of each named field in order. When any field is missing it
// returns a *RequestError with missingCode and the given message.
//
// Callers must call r.MultipartForm.RemoveAll once the files are relayed.
func FormFiles(w http.ResponseWriter, r *http.Request, maxBytes int64, missingCode, missingMessage string, fields ...string) ([]*multipart.FileHeader, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, &RequestError{
				Message: fmt.Sprintf("upload exceeds maximum size of %d bytes", tooLarge.Limit),
				Code:    types.CodeInvalidForm,
				Status:  http.StatusRequestEntityTooLarge,
			}
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			// A form without files is the same as a form missing the files.
			return nil, &RequestError{Message: missingMessage, Code: missingCode}
		default:
			return nil, &RequestError{
				Message: fmt.Sprintf("invalid multipart form: %v", err),
				Code:    types.CodeInvalidForm,
			}
		}
	}

	files := make([]*multipart.FileHeader, 0, len(fields))
	for _, field := range fields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			return nil, &RequestError{Message: missingMessage, Code: missingCode, Param: field}
		}
		files = append(files, headers[0])
	}
	return files, nil
}

// RequestError represents a request parsing or validation error. Nothing is
// forwarded to the backend once one is raised.
type RequestError struct {
	Message string
	Code    string
	Param   string

	// Status defaults to 400.
	Status int
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status for the error.
func (e *RequestError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

// ToResult converts the error into a failed Result.
func (e *RequestError) ToResult() types.Result {
	return types.Fail(e.StatusCode(), e.Code, e.Message)
}
