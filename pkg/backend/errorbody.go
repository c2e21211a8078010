package backend

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorBodyKind tags how an error body was decoded.
type ErrorBodyKind int

const (
	// KindEmpty is an error body with no content.
	KindEmpty ErrorBodyKind = iota

	// KindStructured is a body that parsed as JSON.
	KindStructured

	// KindRawText is a body that did not parse as JSON.
	KindRawText
)

// String returns the kind name.
func (k ErrorBodyKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindRawText:
		return "raw_text"
	default:
		return "empty"
	}
}

// messagePaths are tried in order against a structured body.
var messagePaths = []string{"error.message", "message", "error", "detail"}

// ErrorBody is a backend error body, decoded best-effort.
type ErrorBody struct {
	Kind ErrorBodyKind
	Raw  string
}

// DecodeErrorBody attempts a structured parse and falls back to raw text.
func DecodeErrorBody(body []byte) ErrorBody {
	raw := strings.TrimSpace(string(body))
	switch {
	case raw == "":
		return ErrorBody{Kind: KindEmpty}
	case gjson.Valid(raw):
		return ErrorBody{Kind: KindStructured, Raw: raw}
	default:
		return ErrorBody{Kind: KindRawText, Raw: raw}
	}
}

// Message reduces the body to one human-readable string. A structured body
// yields the first non-empty string among error.message, message, error and
// detail. A bare JSON string yields its unquoted value. Otherwise the JSON
// text itself is returned. The result is empty only for an empty body.
func (b ErrorBody) Message() string {
	switch b.Kind {
	case KindStructured:
		if v := gjson.Parse(b.Raw); v.Type == gjson.String {
			if strings.TrimSpace(v.Str) != "" {
				return v.Str
			}
			return b.Raw
		}
		for _, path := range messagePaths {
			v := gjson.Get(b.Raw, path)
			if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
				return v.Str
			}
		}
		return b.Raw
	case KindRawText:
		return b.Raw
	default:
		return ""
	}
}
