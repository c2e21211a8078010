package proxy

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// WriteJSONResponse writes data as a JSON response with the given status.
// A json.RawMessage payload is written verbatim.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	if raw, ok := data.(json.RawMessage); ok {
		w.WriteHeader(statusCode)
		if _, err := w.Write(raw); err != nil {
			return fmt.Errorf("failed to write JSON response: %w", err)
		}
		return nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

// WriteJSON is WriteJSONResponse for handlers that can only log a failure.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	if err := WriteJSONResponse(w, statusCode, data); err != nil {
		slog.Error("failed to write response", "status", statusCode, "error", err)
	}
}

// Redirect answers with a 302 to location.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}
