package types

import "net/http"

// Result is the normalized outcome of one gateway route. Each route decides how
// a Result is serialized, so error mapping happens once regardless of the
// route's external shape.
type Result struct {
	// Status is the HTTP status to answer with.
	Status int

	// Payload is the success body. It is usually a json.RawMessage from the
	// backend or a small reshaped struct.
	Payload any

	// Err is set when the route failed.
	Err *ErrorInfo
}

// OK returns a successful Result. A zero status becomes 200.
func OK(status int, payload any) Result {
	if status == 0 {
		status = http.StatusOK
	}
	return Result{Status: status, Payload: payload}
}

// Fail returns a failed Result.
func Fail(status int, code, message string) Result {
	return Result{Status: status, Err: &ErrorInfo{Code: code, Message: message}}
}

// Failed reports whether the Result carries an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// WithCode returns a copy of a failed Result whose code is replaced, keeping
// the status and message. Successful results are returned unchanged.
func (r Result) WithCode(code string) Result {
	if r.Err == nil {
		return r
	}
	info := *r.Err
	info.Code = code
	r.Err = &info
	return r
}

// WithInternalMessage returns a copy whose message is replaced when the
// Result is a 500. Upstream messages at other statuses are kept.
func (r Result) WithInternalMessage(message string) Result {
	if r.Err == nil || r.Status != http.StatusInternalServerError || r.Err.Code != CodeInternalError {
		return r
	}
	info := *r.Err
	info.Message = message
	r.Err = &info
	return r
}

// Message returns the error message, or "" for a successful Result.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

// PredictionEnvelope is the failure shape of the AI prediction routes.
type PredictionEnvelope struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// StoryData carries a generated background story.
type StoryData struct {
	Story string `json:"story"`
}

// StoryEnvelope is the shape of the background story route. Code is only set
// for input errors.
type StoryEnvelope struct {
	Success bool       `json:"success"`
	Data    *StoryData `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Code    string     `json:"code,omitempty"`
}

// PlainError is the failure shape of the diary and storage routes.
type PlainError struct {
	Error string `json:"error"`
}

// CodedError is the input error shape of the routes whose failures are
// otherwise a PlainError.
type CodedError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Transcript is the voice diary success shape.
type Transcript struct {
	Transcript string `json:"transcript"`
}

// ClientID wraps one OAuth client id.
type ClientID struct {
	ClientID string `json:"clientId"`
}

// OAuthConfigResponse is the /api/oauth-config shape.
type OAuthConfigResponse struct {
	Google ClientID `json:"google"`
	Kakao  ClientID `json:"kakao"`
	Naver  ClientID `json:"naver"`
}
