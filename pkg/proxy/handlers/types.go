package handlers

import (
	"context"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/oauth"
)

// Backend is the part of *backend.Client the handlers use.
type Backend interface {
	Do(ctx context.Context, req *backend.Request) (*backend.Response, error)
	Relay(ctx context.Context, path, authorization string, parts []backend.FilePart) (*backend.Response, error)
}

// AuthURLBuilder builds provider authorization URLs. *oauth.Registry
// satisfies it.
type AuthURLBuilder interface {
	BuildAuthURL(ctx context.Context, p oauth.Provider) (string, error)
}

// Backend paths. They mirror the gateway's own routes.
const (
	backendStoryPath    = "/api/ai/generate-background-story"
	backendBreedPath    = "/api/ai/predict-breed"
	backendBreedingPath = "/api/ai/predict-breeding"
	backendDiaryPath    = "/api/diary"
	backendVoicePath    = "/api/diary/voice"
	backendUploadPath   = "/api/s3/upload"
)
