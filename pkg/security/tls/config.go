package tls

import (
	"crypto/tls"
	"fmt"

	"pawhub/gateway/pkg/config"
)

// ServerConfig builds the listener configuration for cfg. The returned
// reloader already holds the initial certificate.
func ServerConfig(cfg config.TLSConfig) (*tls.Config, *CertificateReloader, error) {
	if !cfg.Enabled {
		return nil, nil, fmt.Errorf("TLS is not enabled")
	}
	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return nil, nil, fmt.Errorf("cert_file and key_file are required when TLS is enabled")
	}

	reloader := NewCertificateReloader(cfg.CertFile, cfg.KeyFile, cfg.ReloadInterval)
	if err := reloader.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	// #nosec G402 - MinVersion is validated to 1.2 or 1.3
	tlsConfig := &tls.Config{
		MinVersion:     ParseVersion(cfg.MinVersion),
		GetCertificate: reloader.GetCertificateFunc(),
		NextProtos:     []string{"h2", "http/1.1"},
	}

	return tlsConfig, reloader, nil
}

// ParseVersion maps "1.2" and "1.3" to their crypto/tls constants. Anything
// else yields TLS 1.2.
func ParseVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
