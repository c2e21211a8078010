package handlers

import (
	"net/http"

	"pawhub/gateway/pkg/config"
)

// Deps are the collaborators shared by the route handlers.
type Deps struct {
	Backend     Backend
	OAuth       AuthURLBuilder
	OAuthConfig config.OAuthConfig

	// MaxUploadBytes bounds multipart bodies. Zero means unbounded.
	MaxUploadBytes int64
}

// Register mounts every /api route on mux.
func Register(mux *http.ServeMux, d Deps) {
	diary := NewDiaryHandler(d.Backend)

	mux.Handle("POST /api/ai/generate-background-story", NewStoryHandler(d.Backend))
	mux.Handle("POST /api/ai/predict-breed", NewPredictBreedHandler(d.Backend, d.MaxUploadBytes))
	mux.Handle("POST /api/ai/predict-breeding", NewPredictBreedingHandler(d.Backend, d.MaxUploadBytes))

	mux.HandleFunc("GET /api/diary", diary.List)
	mux.HandleFunc("POST /api/diary", diary.Create)
	mux.Handle("POST /api/diary/voice", NewVoiceHandler(d.Backend, d.MaxUploadBytes))

	mux.Handle("POST /api/s3/upload", NewUploadHandler(d.Backend, d.MaxUploadBytes))

	mux.Handle("GET /api/oauth-config", NewOAuthConfigHandler(d.OAuthConfig))
	mux.Handle("GET /api/auth/login/{provider}", NewLoginHandler(d.OAuth))
	mux.Handle("GET /api/auth/callback", NewCallbackHandler())
	mux.Handle("GET /api/auth/callback/{provider}", NewProviderCallbackHandler())
}
