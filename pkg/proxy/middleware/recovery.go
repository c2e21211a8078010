package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and answers
// {"error":"Internal server error"} with 500. The panic is logged with its
// stack trace; nothing internal is exposed to the client.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				proxy.WriteJSON(w, http.StatusInternalServerError, types.PlainError{
					Error: types.MessageInternalError,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
