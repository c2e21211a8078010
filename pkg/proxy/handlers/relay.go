package handlers

import (
	"net/http"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy"
)

// upload describes one multipart relay route.
type upload struct {
	route string
	path  string

	// fields are required in the inbound form and keep their names upstream.
	fields []string

	missingCode    string
	missingMessage string
}

// relay validates the inbound form and re-frames its files to the backend.
// Nothing is forwarded when a required field is missing.
func relay(w http.ResponseWriter, r *http.Request, b Backend, maxBytes int64, u upload) (*backend.Response, error) {
	files, err := proxy.FormFiles(w, r, maxBytes, u.missingCode, u.missingMessage, u.fields...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	parts := make([]backend.FilePart, len(files))
	for i, fh := range files {
		parts[i] = backend.FilePartFromHeader(u.fields[i], fh)
	}

	return b.Relay(r.Context(), u.path, proxy.Authorization(r), parts)
}
