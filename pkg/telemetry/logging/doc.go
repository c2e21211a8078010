// Package logging builds the gateway's log/slog logger.
//
// # Overview
//
// New returns a *slog.Logger whose handler:
//   - writes JSON (default) or text at the configured level
//   - adds request_id from the context, as set by the request ID middleware
//   - redacts credentials before they reach the output
//
// # Usage
//
//	logger, err := logging.Setup(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.InfoContext(ctx, "diary forwarded", "authorization", auth)
//	// {"level":"INFO","msg":"diary forwarded","authorization":"Bearer ***","request_id":"..."}
//
// # Redaction
//
// Attributes whose key contains authorization, token, secret, password or
// cookie are masked. All other string values are scanned for:
//
//   - Bearer tokens: Bearer eyJhbGc... → Bearer ***
//   - JWTs: eyJ....eyJ....sig → ***.jwt.***
//   - OAuth query secrets: code=abc&state=x → code=***&state=x
//   - Emails: user@example.com → u***@example.com
package logging
