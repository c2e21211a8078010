package types

// ErrorInfo is the machine-readable half of a failed Result.
type ErrorInfo struct {
	// Code is a stable machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description. Never empty.
	Message string `json:"message"`
}

// Input error codes. These are always answered with 400 and nothing is forwarded.
const (
	// CodeNoImage indicates the breed prediction upload is missing its image.
	CodeNoImage = "NO_IMAGE"

	// CodeNoImages indicates one or both breeding parent images are missing.
	CodeNoImages = "NO_IMAGES"

	// CodeNoAudio indicates the voice diary upload is missing its audio.
	CodeNoAudio = "NO_AUDIO"

	// CodeNoFile indicates the storage upload is missing its file.
	CodeNoFile = "NO_FILE"

	// CodeInvalidBody indicates a missing or malformed JSON body.
	CodeInvalidBody = "INVALID_BODY"

	// CodeInvalidForm indicates the multipart form could not be parsed.
	CodeInvalidForm = "INVALID_FORM"

	// CodeUnknownProvider indicates an OAuth provider outside google, kakao, naver.
	CodeUnknownProvider = "UNKNOWN_PROVIDER"
)

// Forwarding error codes.
const (
	// CodeUpstreamError indicates the backend answered with a non-2xx status.
	CodeUpstreamError = "UPSTREAM_ERROR"

	// CodeBackendTimeout indicates the backend did not answer in time.
	CodeBackendTimeout = "BACKEND_TIMEOUT"

	// CodeInternalError indicates a transport or parse failure.
	CodeInternalError = "INTERNAL_ERROR"

	// CodePredictionError is the breed prediction route's failure code.
	CodePredictionError = "PREDICTION_ERROR"

	// CodeBreedingPredictionError is the breeding prediction route's failure code.
	CodeBreedingPredictionError = "BREEDING_PREDICTION_ERROR"

	// CodeStoryError is the background story route's failure code.
	CodeStoryError = "STORY_GENERATION_ERROR"
)

// Generic messages.
const (
	MessageInternalError  = "Internal server error"
	MessageBackendTimeout = "Backend request timed out"
)
