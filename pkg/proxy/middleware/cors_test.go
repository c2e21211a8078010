package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhub/gateway/pkg/config"
)

func TestCORSMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	tests := []struct {
		name        string
		config      *CORSConfig
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantMethods bool
		wantCreds   bool
	}{
		{
			name:       "allowed origin is echoed",
			config:     DefaultCORSConfig(),
			method:     http.MethodGet,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusOK,
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "disallowed origin gets no header",
			config:     DefaultCORSConfig(),
			method:     http.MethodGet,
			origin:     "https://evil.test",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard",
			config:     &CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}},
			method:     http.MethodPost,
			origin:     "https://any.test",
			wantStatus: http.StatusOK,
			wantOrigin: "*",
		},
		{
			name:        "preflight answered with 204",
			config:      DefaultCORSConfig(),
			method:      http.MethodOptions,
			origin:      "http://localhost:3000",
			preflight:   true,
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "http://localhost:3000",
			wantMethods: true,
		},
		{
			name:       "preflight from disallowed origin gets no allow headers",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "https://evil.test",
			preflight:  true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "bare OPTIONS reaches the handler",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusOK,
			wantOrigin: "http://localhost:3000",
		},
		{
			name: "credentials",
			config: &CORSConfig{
				Enabled:          true,
				AllowedOrigins:   []string{"https://pawhub.test"},
				AllowCredentials: true,
			},
			method:     http.MethodGet,
			origin:     "https://pawhub.test",
			wantStatus: http.StatusOK,
			wantOrigin: "https://pawhub.test",
			wantCreds:  true,
		},
		{
			name:       "disabled",
			config:     &CORSConfig{Enabled: false, AllowedOrigins: []string{"*"}},
			method:     http.MethodGet,
			origin:     "https://any.test",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := CORSMiddleware(tt.config)(handler)

			req := httptest.NewRequest(tt.method, "/api/diary", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Errorf("Access-Control-Allow-Methods set = %v, want %v", got, tt.wantMethods)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials") == "true"; got != tt.wantCreds {
				t.Errorf("Access-Control-Allow-Credentials set = %v, want %v", got, tt.wantCreds)
			}
		})
	}
}

func TestCORSMiddleware_PreflightHeaders(t *testing.T) {
	wrapped := CORSMiddleware(DefaultCORSConfig())(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/ai/predict-breed", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Authorization, Content-Type, X-Request-ID" {
		t.Errorf("Access-Control-Allow-Headers = %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Access-Control-Max-Age = %q, want 3600", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); got != "X-Request-ID" {
		t.Errorf("Access-Control-Expose-Headers = %q", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}

func TestNewCORSConfig(t *testing.T) {
	cfg := config.Default()
	cors := NewCORSConfig(cfg.Server.CORS)

	if !cors.Enabled {
		t.Error("CORS should be enabled by default")
	}
	if len(cors.AllowedOrigins) != 1 || cors.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cors.AllowedOrigins)
	}
	if cors.MaxAge != config.DefaultCORSMaxAge {
		t.Errorf("MaxAge = %d, want %d", cors.MaxAge, config.DefaultCORSMaxAge)
	}
}

func BenchmarkCORSMiddleware(b *testing.B) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := CORSMiddleware(DefaultCORSConfig())(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/diary", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
	}
}
