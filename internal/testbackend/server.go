// Package testbackend provides a scripted stand-in for the PawHub backend.
package testbackend

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// Server is a mock backend for exercising the gateway.
// It answers with scripted responses and records every request it receives.
type Server struct {
	server    *httptest.Server
	responses map[string]Response
	requests  []Recorded
	mu        sync.Mutex
}

// Response defines a scripted answer.
type Response struct {
	StatusCode int

	// Body is written as-is when it is a string or []byte, JSON-encoded otherwise.
	Body any

	Delay   time.Duration
	Headers map[string]string
}

// File is a file part received in a multipart request.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Recorded is a request received by the server.
type Recorded struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization []string
	Traceparent   string
	ContentType   string
	Body          []byte
	Files         map[string][]File
}

// New starts a mock backend. It is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{responses: make(map[string]Response)}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close closes the server.
func (s *Server) Close() {
	s.server.Close()
}

// Handle scripts the response for a method and path.
func (s *Server) Handle(method, path string, response Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method+" "+path] = response
}

// JSON scripts a JSON response.
func (s *Server) JSON(method, path string, status int, body any) {
	s.Handle(method, path, Response{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	})
}

// Text scripts a plain-text response.
func (s *Server) Text(method, path string, status int, body string) {
	s.Handle(method, path, Response{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
	})
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Last returns the most recent request. It returns false when none was received.
func (s *Server) Last() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	rec := Recorded{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Values("Authorization"),
		Traceparent:   r.Header.Get("traceparent"),
		ContentType:   r.Header.Get("Content-Type"),
	}
	if err := r.ParseMultipartForm(32 << 20); err == nil && r.MultipartForm != nil {
		rec.Files = readFiles(r)
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	response, ok := s.responses[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

func readFiles(r *http.Request) map[string][]File {
	files := make(map[string][]File)
	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			data, _ := io.ReadAll(f)
			f.Close()
			files[field] = append(files[field], File{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return files
}

// UnreachableURL returns the address of a server that has already been shut
// down, so that connecting to it fails.
func UnreachableURL() string {
	s := httptest.NewServer(http.NotFoundHandler())
	addr := s.URL
	s.Close()
	return addr
}
