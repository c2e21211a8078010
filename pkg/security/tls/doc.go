/*
Package tls terminates HTTPS for the gateway listener.

The certificate pair is loaded once at startup and then re-read whenever the
files on disk change, so a renewed certificate is picked up without a restart:

	tlsConfig, reloader, err := tls.ServerConfig(cfg.Server.TLS)
	if err != nil {
		return err
	}
	go reloader.Watch(ctx)

	ln = cryptotls.NewListener(ln, tlsConfig)

Changes are noticed through fsnotify events on the certificate directories,
with a periodic check as a fallback. A certificate that fails validation on
reload is logged and ignored; the previous one keeps serving.
*/
package tls
