package proxy

import (
	"errors"
	"net/http"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy/types"
)

// HandleError maps any error raised while serving a route to a Result.
//
//   - *RequestError: its own status (400 by default) and code
//   - *backend.UpstreamError: the backend's status with its best-effort message
//   - *backend.TimeoutError: 504 "Backend request timed out"
//   - anything else: 500 "Internal server error"
func HandleError(err error) types.Result {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.ToResult()
	}

	var upErr *backend.UpstreamError
	if errors.As(err, &upErr) {
		return types.Fail(upErr.StatusCode, types.CodeUpstreamError, upErr.Message())
	}

	var timeoutErr *backend.TimeoutError
	if errors.As(err, &timeoutErr) {
		return types.Fail(http.StatusGatewayTimeout, types.CodeBackendTimeout, types.MessageBackendTimeout)
	}

	return types.Fail(http.StatusInternalServerError, types.CodeInternalError, types.MessageInternalError)
}
