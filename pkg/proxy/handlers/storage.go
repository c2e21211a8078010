package handlers

import (
	"errors"
	"net/http"

	"github.com/tidwall/gjson"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy/types"
)

// UploadURL is the storage upload success shape.
type UploadURL struct {
	URL string `json:"url"`
}

var uploadURLPaths = []string{"url", "data.url", "location"}

// UploadHandler serves POST /api/s3/upload.
type UploadHandler struct {
	Backend        Backend
	MaxUploadBytes int64
}

// NewUploadHandler creates a storage upload handler.
func NewUploadHandler(b Backend, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{Backend: b, MaxUploadBytes: maxUploadBytes}
}

var fileUpload = upload{
	route:          "s3.upload",
	path:           backendUploadPath,
	fields:         []string{"file"},
	missingCode:    types.CodeNoFile,
	missingMessage: "File is required",
}

// ServeHTTP relays the file and answers with the stored object's URL.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := relay(w, r, h.Backend, h.MaxUploadBytes, fileUpload)
	if err == nil {
		var u string
		if u, err = uploadedURL(resp); err == nil {
			writePlain(w, types.OK(http.StatusOK, UploadURL{URL: u}))
			return
		}
	}
	writePlain(w, fail(r.Context(), fileUpload.route, err))
}

func uploadedURL(resp *backend.Response) (string, error) {
	doc, err := resp.JSON()
	if err != nil {
		return "", err
	}
	for _, path := range uploadURLPaths {
		if v := gjson.GetBytes(doc, path); v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}
	return "", &backend.ParseError{
		Path:        backendUploadPath,
		RawResponse: string(doc),
		Cause:       errors.New("response contains no url"),
	}
}
