package handlers

import (
	"net/http"

	"pawhub/gateway/pkg/proxy/types"
)

// PredictHandler relays images to one of the AI prediction endpoints and
// passes the backend JSON through.
type PredictHandler struct {
	Backend        Backend
	MaxUploadBytes int64

	upload      upload
	failCode    string
	failMessage string
}

// NewPredictBreedHandler serves POST /api/ai/predict-breed.
func NewPredictBreedHandler(b Backend, maxUploadBytes int64) *PredictHandler {
	return &PredictHandler{
		Backend:        b,
		MaxUploadBytes: maxUploadBytes,
		upload: upload{
			route:          "predict-breed",
			path:           backendBreedPath,
			fields:         []string{"image"},
			missingCode:    types.CodeNoImage,
			missingMessage: "Image file is required",
		},
		failCode:    types.CodePredictionError,
		failMessage: "Failed to predict breed",
	}
}

// NewPredictBreedingHandler serves POST /api/ai/predict-breeding.
func NewPredictBreedingHandler(b Backend, maxUploadBytes int64) *PredictHandler {
	return &PredictHandler{
		Backend:        b,
		MaxUploadBytes: maxUploadBytes,
		upload: upload{
			route:          "predict-breeding",
			path:           backendBreedingPath,
			fields:         []string{"parent1", "parent2"},
			missingCode:    types.CodeNoImages,
			missingMessage: "Both parent1 and parent2 images are required",
		},
		failCode:    types.CodeBreedingPredictionError,
		failMessage: "Failed to predict breeding result",
	}
}

// ServeHTTP implements http.Handler.
func (h *PredictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writePrediction(w, h.serve(w, r))
}

func (h *PredictHandler) serve(w http.ResponseWriter, r *http.Request) types.Result {
	resp, err := relay(w, r, h.Backend, h.MaxUploadBytes, h.upload)
	if err == nil {
		doc, jsonErr := resp.JSON()
		if jsonErr == nil {
			return types.OK(http.StatusOK, doc)
		}
		err = jsonErr
	}

	return routeFailure(fail(r.Context(), h.upload.route, err), h.failCode, h.failMessage)
}
