package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestStory(t *testing.T) {
	tests := []struct {
		name        string
		backendBody any
		wantStatus  int
		wantStory   string
	}{
		{"top-level story", map[string]any{"story": "Coco was found in a park."}, http.StatusOK, "Coco was found in a park."},
		{"nested story", map[string]any{"data": map[string]string{"story": "nested"}}, http.StatusOK, "nested"},
		{"no story", map[string]any{"result": "?"}, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.backend.JSON(http.MethodPost, "/api/ai/generate-background-story", http.StatusOK, tt.backendBody)

			rec := h.do(jsonRequest(http.MethodPost, "/api/ai/generate-background-story", `{"name":"Coco","breed":"poodle"}`))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			body := decode(t, rec)
			if tt.wantStatus != http.StatusOK {
				if body["success"] != false || body["message"] != "Failed to generate background story" {
					t.Errorf("unexpected failure body %v", body)
				}
				return
			}
			data, _ := body["data"].(map[string]any)
			if body["success"] != true || data["story"] != tt.wantStory {
				t.Errorf("unexpected body %v", body)
			}

			last, _ := h.backend.Last()
			if string(last.Body) != `{"name":"Coco","breed":"poodle"}` {
				t.Errorf("backend body = %s, want passthrough", last.Body)
			}
			if last.ContentType != "application/json" {
				t.Errorf("backend content type = %q", last.ContentType)
			}
		})
	}
}

func TestPredictBreed_Passthrough(t *testing.T) {
	h := newHarness(t)
	h.backend.Text(http.MethodPost, "/api/ai/predict-breed", http.StatusOK,
		`{"success":true,"breed":"Shiba Inu","confidence":0.93}`)

	rec := h.do(multipartRequest(t, "/api/ai/predict-breed",
		filePart{field: "image", filename: "dog.jpg", contentType: "image/jpeg", data: "jpeg-bytes"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != `{"success":true,"breed":"Shiba Inu","confidence":0.93}` {
		t.Errorf("body = %s, want verbatim backend JSON", got)
	}

	last, _ := h.backend.Last()
	files := last.Files["image"]
	if len(files) != 1 {
		t.Fatalf("backend received files %v", last.Files)
	}
	if files[0].Filename != "dog.jpg" || files[0].ContentType != "image/jpeg" || string(files[0].Data) != "jpeg-bytes" {
		t.Errorf("relayed file = %+v", files[0])
	}
	if _, ok := last.Files["note"]; ok {
		t.Error("non-file fields should not be relayed")
	}
}

func TestPredictBreeding_RelaysBothParents(t *testing.T) {
	h := newHarness(t)
	h.backend.JSON(http.MethodPost, "/api/ai/predict-breeding", http.StatusOK, map[string]any{"success": true})

	rec := h.do(multipartRequest(t, "/api/ai/predict-breeding",
		filePart{field: "parent1", filename: "mom.png", contentType: "image/png", data: "m"},
		filePart{field: "parent2", filename: "dad.png", contentType: "image/png", data: "d"},
	))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	last, _ := h.backend.Last()
	if string(last.Files["parent1"][0].Data) != "m" || string(last.Files["parent2"][0].Data) != "d" {
		t.Errorf("relayed files = %+v", last.Files)
	}
}

func TestPredictBreed_InternalFailureUsesRouteCode(t *testing.T) {
	h := newHarness(t)
	h.backend.Text(http.MethodPost, "/api/ai/predict-breed", http.StatusOK, "not json")

	rec := h.do(multipartRequest(t, "/api/ai/predict-breed",
		filePart{field: "image", filename: "dog.jpg", contentType: "image/jpeg", data: "x"}))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if got := predictionField("code")(body); got != "PREDICTION_ERROR" {
		t.Errorf("code = %q, want PREDICTION_ERROR", got)
	}
	if got := predictionField("message")(body); got != "Failed to predict breed" {
		t.Errorf("message = %q", got)
	}
}

func TestDiaryList(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPath  string
		wantQuery url.Values
	}{
		{"collection", "/api/diary", "/api/diary", url.Values{}},
		{"per user", "/api/diary?userId=u%2F1&page=2", "/api/diary/user/u/1", url.Values{"page": {"2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.backend.JSON(http.MethodGet, "/api/diary", http.StatusOK, []any{})
			h.backend.JSON(http.MethodGet, "/api/diary/user/u/1", http.StatusOK, []any{})

			rec := h.do(jsonRequest(http.MethodGet, tt.target, ""))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
			}

			last, _ := h.backend.Last()
			if last.Path != tt.wantPath {
				t.Errorf("backend path = %q, want %q", last.Path, tt.wantPath)
			}
			if last.Query.Encode() != tt.wantQuery.Encode() {
				t.Errorf("backend query = %v, want %v", last.Query, tt.wantQuery)
			}
			if len(last.Authorization) != 1 || last.Authorization[0] != "" {
				t.Errorf("absent Authorization should forward as empty, got %q", last.Authorization)
			}
		})
	}
}

func TestVoice(t *testing.T) {
	audio := filePart{field: "audio", filename: "memo.webm", contentType: "audio/webm", data: "opus"}

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantBody   string
	}{
		{"plain text transcript", http.StatusOK, "walked to the park\n", http.StatusOK, `{"transcript":"walked to the park"}`},
		{"json transcript", http.StatusOK, `{"transcript":"fed the cat"}`, http.StatusOK, `{"transcript":"fed the cat"}`},
		{"raw text error", http.StatusBadGateway, "boom", http.StatusBadGateway, `{"error":"boom"}`},
		{"json string error", http.StatusBadRequest, `"boom"`, http.StatusBadRequest, `{"error":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.backend.Text(http.MethodPost, "/api/diary/voice", tt.status, tt.body)

			rec := h.do(multipartRequest(t, "/api/diary/voice", audio))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	h := newHarness(t)
	h.backend.JSON(http.MethodPost, "/api/s3/upload", http.StatusOK,
		map[string]string{"url": "https://bucket.s3.amazonaws.com/cat.gif"})

	rec := h.do(multipartRequest(t, "/api/s3/upload",
		filePart{field: "file", filename: "cat.gif", contentType: "image/gif", data: "gif"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"url":"https://bucket.s3.amazonaws.com/cat.gif"}` {
		t.Errorf("body = %s", got)
	}
}

func TestUpload_TooLarge(t *testing.T) {
	h := newHarness(t)
	big := strings.Repeat("x", 2<<20)

	rec := h.do(multipartRequest(t, "/api/s3/upload",
		filePart{field: "file", filename: "big.bin", contentType: "application/octet-stream", data: big}))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if got := plainCode(decode(t, rec)); got != "INVALID_FORM" {
		t.Errorf("code = %q", got)
	}
	if h.backend.RequestCount() != 0 {
		t.Error("oversized upload should not be forwarded")
	}
}

func TestOAuthConfig(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/oauth-config", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"google":{"clientId":"g-id"},"kakao":{"clientId":"k-id"},"naver":{"clientId":"n-id"}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login/kakao", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Host != "kauth.kakao.com" || loc.Query().Get("client_id") != "k-id" {
		t.Errorf("Location = %s", loc)
	}

	rec = h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login/github", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown provider status = %d, want 400", rec.Code)
	}
	if got := plainCode(decode(t, rec)); got != "UNKNOWN_PROVIDER" {
		t.Errorf("code = %q", got)
	}
}

func TestCallbacks(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"google success", "/api/auth/callback/google?code=abc", http.StatusFound, "/?success=google_login"},
		{"naver success", "/api/auth/callback/naver?code=abc&state=s", http.StatusFound, "/?success=naver_login"},
		{"provider error", "/api/auth/callback/google?error=access_denied", http.StatusFound, "/?error=access_denied"},
		{"missing code", "/api/auth/callback/google", http.StatusFound, "/?error=no_code"},
		{"unknown provider", "/api/auth/callback/github?code=abc", http.StatusFound, "/?error=unknown_provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.do(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestMockCallback(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=anything&state=xyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	for _, key := range []string{"userId", "accessToken", "refreshToken"} {
		if s, _ := body[key].(string); s == "" {
			t.Errorf("%s missing from %v", key, body)
		}
	}
}
