package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

// fail logs err with the route name and maps it to a Result.
func fail(ctx context.Context, route string, err error) types.Result {
	res := proxy.HandleError(err)

	var reqErr *proxy.RequestError
	var upErr *backend.UpstreamError
	switch {
	case errors.As(err, &reqErr):
		slog.WarnContext(ctx, "rejected request",
			"route", route,
			"code", reqErr.Code,
			"param", reqErr.Param,
			"error", err,
		)
	case errors.As(err, &upErr):
		slog.ErrorContext(ctx, "backend returned an error",
			"route", route,
			"backend_status", upErr.StatusCode,
			"backend_body", string(upErr.Body.Raw),
			"body_kind", upErr.Body.Kind.String(),
		)
	default:
		slog.ErrorContext(ctx, "backend request failed",
			"route", route,
			"status", res.Status,
			"error", err,
		)
	}

	return res
}

// routeFailure gives backend failures the route's own code, and internal
// failures the route's own message. Input errors and timeouts keep theirs.
func routeFailure(res types.Result, code, message string) types.Result {
	if !res.Failed() {
		return res
	}
	res = res.WithInternalMessage(message)
	switch res.Err.Code {
	case types.CodeUpstreamError, types.CodeInternalError:
		res = res.WithCode(code)
	}
	return res
}

var inputCodes = map[string]bool{
	types.CodeNoImage:         true,
	types.CodeNoImages:        true,
	types.CodeNoAudio:         true,
	types.CodeNoFile:          true,
	types.CodeInvalidBody:     true,
	types.CodeInvalidForm:     true,
	types.CodeUnknownProvider: true,
}

// isInputError reports whether res was raised before anything was forwarded.
func isInputError(res types.Result) bool {
	return res.Failed() && inputCodes[res.Err.Code]
}

// writePlain serializes res as the {error} family of shapes. Input errors
// also carry their code.
func writePlain(w http.ResponseWriter, res types.Result) {
	switch {
	case !res.Failed():
		proxy.WriteJSON(w, res.Status, res.Payload)
	case isInputError(res):
		proxy.WriteJSON(w, res.Status, types.CodedError{Error: res.Err.Message, Code: res.Err.Code})
	default:
		proxy.WriteJSON(w, res.Status, types.PlainError{Error: res.Err.Message})
	}
}

// writePrediction serializes res as a passthrough or a
// {success:false,error:{code,message}} envelope.
func writePrediction(w http.ResponseWriter, res types.Result) {
	if !res.Failed() {
		proxy.WriteJSON(w, res.Status, res.Payload)
		return
	}
	proxy.WriteJSON(w, res.Status, types.PredictionEnvelope{Success: false, Error: res.Err})
}

// writeStory serializes res as a {success,data:{story}} or
// {success:false,message} envelope.
func writeStory(w http.ResponseWriter, res types.Result) {
	if !res.Failed() {
		proxy.WriteJSON(w, res.Status, types.StoryEnvelope{Success: true, Data: res.Payload.(*types.StoryData)})
		return
	}

	env := types.StoryEnvelope{Success: false, Message: res.Err.Message}
	if isInputError(res) {
		env.Code = res.Err.Code
	}
	proxy.WriteJSON(w, res.Status, env)
}
