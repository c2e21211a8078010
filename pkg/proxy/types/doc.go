// Package types defines the gateway's normalized route outcome and the JSON
// shapes each route answers with.
//
// Every handler reduces its work to a Result. The handler's serializer then
// picks the route's historical external shape:
//
//   - AI prediction routes: backend JSON on success, PredictionEnvelope on failure
//   - background story: StoryEnvelope in both cases
//   - diary and storage routes: backend JSON (or Transcript) on success, PlainError on failure
//
// Error codes are stable strings (NO_IMAGE, NO_IMAGES, PREDICTION_ERROR, ...)
// that clients may match on.
package types
