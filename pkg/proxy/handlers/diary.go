package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

// DiaryHandler serves GET and POST /api/diary.
type DiaryHandler struct {
	Backend Backend
}

// NewDiaryHandler creates a diary handler.
func NewDiaryHandler(b Backend) *DiaryHandler {
	return &DiaryHandler{Backend: b}
}

// List forwards a diary listing. A userId query parameter selects the
// per-user collection; any other parameters are passed through.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	path := backendDiaryPath
	if userID := query.Get("userId"); userID != "" {
		path = backendDiaryPath + "/user/" + url.PathEscape(userID)
		query.Del("userId")
	}

	resp, err := h.Backend.Do(r.Context(), &backend.Request{
		Method:        http.MethodGet,
		Path:          path,
		Query:         query,
		Authorization: proxy.Authorization(r),
		Route:         "diary.list",
	})
	writePlain(w, passthrough(r, "diary.list", resp, err))
}

// Create forwards a new diary entry.
func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := proxy.ReadJSONBody(r)
	if err != nil {
		writePlain(w, fail(r.Context(), "diary.create", err))
		return
	}

	resp, err := h.Backend.Do(r.Context(), &backend.Request{
		Method:        http.MethodPost,
		Path:          backendDiaryPath,
		Authorization: proxy.Authorization(r),
		ContentType:   "application/json",
		Body:          bytes.NewReader(body),
		Route:         "diary.create",
	})
	writePlain(w, passthrough(r, "diary.create", resp, err))
}

func passthrough(r *http.Request, route string, resp *backend.Response, err error) types.Result {
	if err == nil {
		doc, jsonErr := resp.JSON()
		if jsonErr == nil {
			return types.OK(http.StatusOK, doc)
		}
		err = jsonErr
	}
	return fail(r.Context(), route, err)
}

// VoiceHandler serves POST /api/diary/voice.
type VoiceHandler struct {
	Backend        Backend
	MaxUploadBytes int64
}

// NewVoiceHandler creates a voice diary handler.
func NewVoiceHandler(b Backend, maxUploadBytes int64) *VoiceHandler {
	return &VoiceHandler{Backend: b, MaxUploadBytes: maxUploadBytes}
}

var voiceUpload = upload{
	route:          "diary.voice",
	path:           backendVoicePath,
	fields:         []string{"audio"},
	missingCode:    types.CodeNoAudio,
	missingMessage: "Audio file is required",
}

// ServeHTTP relays the recording and wraps the transcription as
// {transcript}. The backend answers in plain text; a JSON body with a
// transcript field is accepted too.
func (h *VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := relay(w, r, h.Backend, h.MaxUploadBytes, voiceUpload)
	if err != nil {
		writePlain(w, fail(r.Context(), voiceUpload.route, err))
		return
	}

	transcript := resp.Text()
	if gjson.ValidBytes(resp.Body) {
		if v := gjson.GetBytes(resp.Body, "transcript"); v.Type == gjson.String {
			transcript = v.Str
		}
	}
	writePlain(w, types.OK(http.StatusOK, types.Transcript{Transcript: transcript}))
}
