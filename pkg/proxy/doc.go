// Package proxy holds the request and response plumbing shared by the
// gateway's route handlers.
//
// Handlers read their input with ReadJSONBody or FormFiles, forward it through
// the backend client and turn the outcome into a types.Result. Every failure
// goes through HandleError, so status mapping is the same on every route:
//
//   - input errors (*RequestError): 400, or 413 for oversized uploads
//   - upstream non-2xx: the backend's own status
//   - backend timeout: 504
//   - anything else, including an unreachable backend: 500
//
// Each route then serializes the Result in its own external shape. The
// handlers live in proxy/handlers and the middleware chain in
// proxy/middleware.
package proxy
