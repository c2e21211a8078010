// Package config provides configuration management for the PawHub gateway.
//
// Configuration is read from an optional YAML file, completed with defaults and
// then overridden by environment variables. The frontend deployment already
// exports the unprefixed variables, so they are honored as-is:
//
//   - BACKEND_URL, then NEXT_PUBLIC_BACKEND_URL: backend.base_url
//   - GOOGLE_CLIENT_ID, KAKAO_CLIENT_ID, NAVER_CLIENT_ID: oauth.*_client_id
//
// Everything else uses the PAWHUB_SECTION_FIELD convention, for example
// PAWHUB_SERVER_LISTEN_ADDRESS or PAWHUB_LOG_LEVEL.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("pawhub.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.Validate(cfg); err != nil {
//	    return err
//	}
//
// The loaded *Config is passed explicitly to the packages that need it.
package config
