package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"pawhub/gateway/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the gateway configuration",
	Long: `Load the configuration the way "run" does, validate it and print the
effective settings.

Examples:
  # Validate a config file
  pawhub validate --config pawhub.yaml

  # Validate the environment configuration as JSON
  pawhub validate --output json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// configSummary is the effective configuration as printed by validate.
// Client ids are reported as set or unset, never echoed.
type configSummary struct {
	ListenAddress  string `json:"listen_address" yaml:"listen_address"`
	TLS            bool   `json:"tls_enabled" yaml:"tls_enabled"`
	BackendURL     string `json:"backend_url" yaml:"backend_url"`
	BackendTimeout string `json:"backend_timeout" yaml:"backend_timeout"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	GoogleClientID bool   `json:"google_client_id_set" yaml:"google_client_id_set"`
	KakaoClientID  bool   `json:"kakao_client_id_set" yaml:"kakao_client_id_set"`
	NaverClientID  bool   `json:"naver_client_id_set" yaml:"naver_client_id_set"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
	Metrics        bool   `json:"metrics_enabled" yaml:"metrics_enabled"`
	Tracing        bool   `json:"tracing_enabled" yaml:"tracing_enabled"`
}

func summarize(cfg *config.Config) configSummary {
	return configSummary{
		ListenAddress:  cfg.Server.ListenAddress,
		TLS:            cfg.Server.TLS.Enabled,
		BackendURL:     cfg.Backend.BaseURL,
		BackendTimeout: cfg.Backend.Timeout.String(),
		MaxUploadBytes: cfg.Backend.MaxUploadBytes,
		GoogleClientID: cfg.OAuth.GoogleClientID != "",
		KakaoClientID:  cfg.OAuth.KakaoClientID != "",
		NaverClientID:  cfg.OAuth.NaverClientID != "",
		LogLevel:       cfg.Telemetry.Logging.Level,
		Metrics:        cfg.Telemetry.Metrics.IsEnabled(),
		Tracing:        cfg.Telemetry.Tracing.Enabled,
	}
}

func (s configSummary) Header() []string { return []string{"SETTING", "VALUE"} }

func (s configSummary) Rows() [][]string {
	return [][]string{
		{"server.listen_address", s.ListenAddress},
		{"server.tls.enabled", strconv.FormatBool(s.TLS)},
		{"backend.base_url", s.BackendURL},
		{"backend.timeout", s.BackendTimeout},
		{"backend.max_upload_bytes", strconv.FormatInt(s.MaxUploadBytes, 10)},
		{"oauth.google_client_id", setOrUnset(s.GoogleClientID)},
		{"oauth.kakao_client_id", setOrUnset(s.KakaoClientID)},
		{"oauth.naver_client_id", setOrUnset(s.NaverClientID)},
		{"telemetry.logging.level", s.LogLevel},
		{"telemetry.metrics.enabled", strconv.FormatBool(s.Metrics)},
		{"telemetry.tracing.enabled", strconv.FormatBool(s.Tracing)},
	}
}

func setOrUnset(set bool) string {
	if set {
		return "set"
	}
	return "unset (placeholder)"
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return printResult(cmd, summarize(cfg))
}
