package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pawhub/gateway/internal/testbackend"
	"pawhub/gateway/pkg/cli"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BACKEND_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile = ""
		outputFormat = string(cli.FormatText)
		runFlags.dryRun = false
		runFlags.listenAddress = ""
		runFlags.logLevel = ""
		diaryFlags.user = ""
		diaryFlags.token = ""
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pawhub.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPolicyCommand(t *testing.T) {
	out, err := execute(t, "policy", "--output", "json")
	if err != nil {
		t.Fatalf("policy error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got["staleTime"] != float64(300000) || got["gcTime"] != float64(600000) || got["retry"] != float64(1) {
		t.Errorf("policy = %v", got)
	}
	if got["refetchOnWindowFocus"] != false || got["refetchOnMount"] != false {
		t.Errorf("refetch flags = %v", got)
	}
}

func TestPolicyCommand_Text(t *testing.T) {
	out, err := execute(t, "policy")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"OPTION", "staleTime", "300000", "refetchOnMount"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "http://backend:8080"
oauth:
  kakao_client_id: "k-1"
`)

	out, err := execute(t, "validate", "--config", path, "--output", "yaml")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	for _, want := range []string{
		"backend_url: http://backend:8080",
		"kakao_client_id_set: true",
		"google_client_id_set: false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "k-1") {
		t.Error("client ids must not be echoed")
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "ftp://backend"
`)

	_, err := execute(t, "validate", "--config", path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("exit code = %d, want %d", code, cli.ExitConfig)
	}
}

func TestRunCommand_DryRun(t *testing.T) {
	out, err := execute(t, "run", "--dry-run", "--log-level", "error")
	if err != nil {
		t.Fatalf("run --dry-run error = %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Errorf("output = %q", out)
	}
}

func TestRunCommand_BadLogLevel(t *testing.T) {
	_, err := execute(t, "run", "--dry-run", "--log-level", "verbose")
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("error = %v, want config error", err)
	}
}

func TestOAuthURLCommand(t *testing.T) {
	gw := testbackend.New(t)
	gw.JSON(http.MethodGet, "/api/oauth-config", http.StatusOK, map[string]any{
		"google": map[string]string{"clientId": "g-1"},
		"kakao":  map[string]string{"clientId": "k-1"},
		"naver":  map[string]string{"clientId": "n-1"},
	})

	out, err := execute(t, "oauth", "url", "google", "--gateway", gw.URL())
	if err != nil {
		t.Fatalf("oauth url error = %v", err)
	}
	url := strings.TrimSpace(out)
	if !strings.HasPrefix(url, "https://accounts.google.com/o/oauth2/v2/auth?") {
		t.Errorf("url = %q", url)
	}
	if !strings.Contains(url, "client_id=g-1") || !strings.Contains(url, "scope=email") {
		t.Errorf("url = %q", url)
	}
}

func TestOAuthURLCommand_UnknownProvider(t *testing.T) {
	_, err := execute(t, "oauth", "url", "github", "--gateway", testbackend.UnreachableURL())
	if err == nil || !strings.Contains(err.Error(), "github") {
		t.Errorf("error = %v", err)
	}
}

func TestDiaryListCommand(t *testing.T) {
	gw := testbackend.New(t)
	gw.JSON(http.MethodGet, "/api/diary", http.StatusOK, []map[string]string{{"id": "d1", "title": "산책"}})

	out, err := execute(t, "diary", "list", "--user", "7", "--token", "tok", "--gateway", gw.URL())
	if err != nil {
		t.Fatalf("diary list error = %v", err)
	}
	if !strings.Contains(out, `"id": "d1"`) {
		t.Errorf("output = %q", out)
	}

	rec, ok := gw.Last()
	if !ok {
		t.Fatal("gateway received no request")
	}
	if rec.Query.Get("userId") != "7" {
		t.Errorf("userId = %q", rec.Query.Get("userId"))
	}
	if len(rec.Authorization) != 1 || rec.Authorization[0] != "Bearer tok" {
		t.Errorf("Authorization = %v", rec.Authorization)
	}
}

func TestDiaryListCommand_GatewayError(t *testing.T) {
	gw := testbackend.New(t)
	gw.JSON(http.MethodGet, "/api/diary", http.StatusInternalServerError, map[string]string{"error": "Internal server error"})

	_, err := execute(t, "diary", "list", "--gateway", gw.URL())
	if err == nil {
		t.Fatal("expected error")
	}
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("exit code = %d", cli.ExitCode(err))
	}
}
