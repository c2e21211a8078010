package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/tidwall/gjson"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

const routeStory = "story"

// storyPaths are tried in order to find the story in the backend answer.
var storyPaths = []string{"story", "data.story"}

// StoryHandler serves POST /api/ai/generate-background-story.
type StoryHandler struct {
	Backend Backend
}

// NewStoryHandler creates a background story handler.
func NewStoryHandler(b Backend) *StoryHandler {
	return &StoryHandler{Backend: b}
}

// ServeHTTP implements http.Handler.
func (h *StoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeStory(w, h.serve(r))
}

func (h *StoryHandler) serve(r *http.Request) types.Result {
	ctx := r.Context()

	body, err := proxy.ReadJSONBody(r)
	if err != nil {
		return fail(ctx, routeStory, err)
	}

	resp, err := h.Backend.Do(ctx, &backend.Request{
		Method:        http.MethodPost,
		Path:          backendStoryPath,
		Authorization: proxy.Authorization(r),
		ContentType:   "application/json",
		Body:          bytes.NewReader(body),
		Route:         routeStory,
	})
	if err == nil {
		var story string
		story, err = extractStory(resp)
		if err == nil {
			return types.OK(http.StatusOK, &types.StoryData{Story: story})
		}
	}

	return routeFailure(fail(ctx, routeStory, err), types.CodeStoryError, "Failed to generate background story")
}

func extractStory(resp *backend.Response) (string, error) {
	doc, err := resp.JSON()
	if err != nil {
		return "", err
	}
	for _, path := range storyPaths {
		if v := gjson.GetBytes(doc, path); v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}
	return "", &backend.ParseError{
		Path:        backendStoryPath,
		RawResponse: string(doc),
		Cause:       errors.New("response contains no story"),
	}
}
