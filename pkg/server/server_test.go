package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawhub/gateway/internal/testbackend"
	"pawhub/gateway/internal/testcerts"
	"pawhub/gateway/pkg/config"
)

func testConfig(t *testing.T, backendURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Backend.BaseURL = backendURL
	cfg.Backend.Timeout = time.Second
	cfg.OAuth = config.OAuthConfig{GoogleClientID: "g-id"}
	return cfg
}

func TestHandler_Routes(t *testing.T) {
	be := testbackend.New(t)
	be.JSON(http.MethodGet, "/api/diary", http.StatusOK, []map[string]string{{"id": "d1"}})
	be.Text(http.MethodGet, config.DefaultBackendHealthPath, http.StatusOK, "UP")

	srv := New(testConfig(t, be.URL()))
	handler := srv.Handler()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"diary passthrough", http.MethodGet, "/api/diary", http.StatusOK},
		{"oauth config", http.MethodGet, "/api/oauth-config", http.StatusOK},
		{"login redirect", http.MethodGet, "/api/auth/login/google", http.StatusFound},
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"readiness", http.MethodGet, "/ready", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/diary", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("every response should carry X-Request-ID")
			}
		})
	}
}

func TestHandler_ReadinessReflectsBackend(t *testing.T) {
	srv := New(testConfig(t, testbackend.UnreachableURL()))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Checks["backend"].Status != "unhealthy" {
		t.Errorf("backend check = %+v", body.Checks["backend"])
	}
}

func TestHandler_MetricsRecordRoutePattern(t *testing.T) {
	be := testbackend.New(t)
	be.JSON(http.MethodGet, "/api/diary/user/7", http.StatusOK, []any{})

	srv := New(testConfig(t, be.URL()))
	handler := srv.Handler()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/diary?userId=7", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()

	for _, want := range []string{
		`pawhub_gateway_requests_total{method="GET",route="GET /api/diary",status="200"} 1`,
		`pawhub_gateway_backend_requests_total{outcome="success",route="diary.list"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestHandler_ForwardsTraceContext(t *testing.T) {
	be := testbackend.New(t)
	be.JSON(http.MethodGet, "/api/diary", http.StatusOK, []any{})

	srv := New(testConfig(t, be.URL()))

	const traceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	req := httptest.NewRequest(http.MethodGet, "/api/diary", nil)
	req.Header.Set("traceparent", traceparent)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got, _ := be.Last()
	if got.Traceparent != traceparent {
		t.Errorf("backend traceparent = %q, want %q", got.Traceparent, traceparent)
	}
}

func TestHandler_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t, testbackend.UnreachableURL())
	disabled := false
	cfg.Telemetry.Metrics.Enabled = &disabled

	srv := New(cfg)
	if srv.Collector() != nil {
		t.Fatal("collector should be nil when metrics are disabled")
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStartAndShutdown(t *testing.T) {
	be := testbackend.New(t)
	srv := New(testConfig(t, be.URL()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !srv.IsRunning() {
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start should fail while running")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("server still reports running")
	}
}

func TestStart_TLS(t *testing.T) {
	certFile, keyFile := testcerts.Write(t, t.TempDir(), testcerts.Valid("localhost", 1))

	cfg := testConfig(t, testbackend.UnreachableURL())
	cfg.Server.TLS = config.TLSConfig{
		Enabled:    true,
		CertFile:   certFile,
		KeyFile:    keyFile,
		MinVersion: "1.2",
	}
	srv := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	client := &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: testcerts.Pool(t, certFile), MinVersion: tls.VersionTLS12},
	}}
	resp, err := client.Get("https://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health over TLS: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.TLS == nil {
		t.Error("response was not served over TLS")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStart_TLSMissingCertificate(t *testing.T) {
	cfg := testConfig(t, testbackend.UnreachableURL())
	cfg.Server.TLS = config.TLSConfig{Enabled: true, CertFile: "missing.pem", KeyFile: "missing.key"}

	err := New(cfg).Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to configure TLS") {
		t.Errorf("Start() = %v, want TLS configuration error", err)
	}
}

func TestStop(t *testing.T) {
	srv := New(testConfig(t, testbackend.UnreachableURL()))

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	srv.Stop()
	srv.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
