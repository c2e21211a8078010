package tls

import (
	"context"
	"crypto/tls"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CertificateReloader serves a certificate pair and swaps it when the files
// change on disk.
type CertificateReloader struct {
	certFile string
	keyFile  string
	interval time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	cert     *tls.Certificate
	certTime time.Time
	keyTime  time.Time
}

// NewCertificateReloader creates a reloader for the pair. A non-positive
// interval falls back to five minutes.
func NewCertificateReloader(certFile, keyFile string, interval time.Duration) *CertificateReloader {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CertificateReloader{
		certFile: certFile,
		keyFile:  keyFile,
		interval: interval,
		now:      time.Now,
	}
}

// Load reads and validates the pair, replacing the served certificate on
// success.
func (r *CertificateReloader) Load() error {
	certInfo, err := os.Stat(r.certFile)
	if err != nil {
		return err
	}
	keyInfo, err := os.Stat(r.keyFile)
	if err != nil {
		return err
	}

	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return err
	}
	if err := ValidateCertificate(&cert, r.now()); err != nil {
		return err
	}

	r.mu.Lock()
	r.cert = &cert
	r.certTime = certInfo.ModTime()
	r.keyTime = keyInfo.ModTime()
	r.mu.Unlock()

	r.logCertificate(&cert)
	return nil
}

// Watch reloads the pair until ctx is done. Filesystem events on the files'
// directories trigger a check right away; the interval poll covers
// filesystems that never deliver events.
func (r *CertificateReloader) Watch(ctx context.Context) {
	events, errs, closeWatcher := r.notify()
	defer closeWatcher()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.reloadIfChanged()

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("certificate file event", "path", event.Name, "op", event.Op.String())
			r.reloadIfChanged()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("certificate watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// notify watches the directories rather than the files so that atomic
// replacements by rename are seen. Without a watcher the channels are nil
// and Watch falls back to polling.
func (r *CertificateReloader) notify() (<-chan fsnotify.Event, <-chan error, func()) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("certificate watcher unavailable, polling only", "error", err)
		return nil, nil, func() {}
	}

	dirs := map[string]struct{}{
		filepath.Dir(r.certFile): {},
		filepath.Dir(r.keyFile):  {},
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			slog.Warn("failed to watch certificate directory", "dir", dir, "error", err)
		}
	}

	return w.Events, w.Errors, func() { _ = w.Close() }
}

// reloadIfChanged reports whether a new certificate was installed.
func (r *CertificateReloader) reloadIfChanged() bool {
	if !r.changed() {
		return false
	}
	if err := r.Load(); err != nil {
		slog.Error("failed to reload certificate",
			"error", err,
			"cert_file", r.certFile,
			"key_file", r.keyFile,
		)
		return false
	}
	slog.Info("certificate reloaded", "cert_file", r.certFile)
	return true
}

func (r *CertificateReloader) changed() bool {
	certInfo, err := os.Stat(r.certFile)
	if err != nil {
		return false
	}
	keyInfo, err := os.Stat(r.keyFile)
	if err != nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return certInfo.ModTime().After(r.certTime) || keyInfo.ModTime().After(r.keyTime)
}

// GetCertificate returns the certificate currently served, or nil before Load.
func (r *CertificateReloader) GetCertificate() *tls.Certificate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cert
}

// GetCertificateFunc adapts the reloader to tls.Config.GetCertificate.
func (r *CertificateReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		return r.GetCertificate(), nil
	}
}

func (r *CertificateReloader) logCertificate(cert *tls.Certificate) {
	x509Cert, err := leaf(cert)
	if err != nil {
		return
	}

	days, expiring := DaysUntilExpiry(x509Cert, r.now())
	attrs := []any{
		"subject", x509Cert.Subject.CommonName,
		"expires_in_days", days,
		"expires_at", x509Cert.NotAfter.Format(time.RFC3339),
	}
	if expiring {
		slog.Warn("certificate expiring soon", attrs...)
		return
	}
	slog.Info("certificate loaded", append(attrs, "issuer", x509Cert.Issuer.CommonName)...)
}
