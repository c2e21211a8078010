package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// Redactor removes credentials from log attributes. The gateway relays bearer
// tokens and OAuth codes on almost every request, so both attribute keys and
// free-form string values are checked.
type Redactor struct {
	patterns []redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Pattern is an additional redaction rule.
type Pattern struct {
	Name        string
	Regex       string
	Replacement string
}

// Built-in pattern names.
const (
	PatternBearerToken = "bearer_token"
	PatternJWT         = "jwt"
	PatternQuerySecret = "query_secret"
	PatternEmail       = "email"
)

var defaultPatterns = []Pattern{
	{PatternBearerToken, `(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	{PatternJWT, `eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`, "***.jwt.***"},
	{PatternQuerySecret, `(?i)\b(access_token|refresh_token|client_secret|code)=[^&\s"]+`, "$1=***"},
	{PatternEmail, `([a-zA-Z0-9._%+-])[a-zA-Z0-9._%+-]*@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`, "$1***@$2"},
}

// sensitiveKeys are matched as substrings of lower-cased attribute keys.
var sensitiveKeys = []string{"authorization", "token", "secret", "password", "cookie"}

// NewRedactor creates a Redactor with the built-in patterns followed by extra.
// Extra patterns that fail to compile are skipped.
func NewRedactor(extra ...Pattern) *Redactor {
	r := &Redactor{}
	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, redactPattern{
			name:        p.Name,
			regex:       regexp.MustCompile(p.Regex),
			replacement: p.Replacement,
		})
	}
	for _, p := range extra {
		regex, err := regexp.Compile(p.Regex)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, redactPattern{name: p.Name, regex: regex, replacement: p.Replacement})
	}
	return r
}

// RedactString redacts credentials embedded in a string value.
func (r *Redactor) RedactString(value string) string {
	if r == nil || value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}
	return redacted
}

// RedactAttr redacts a single attribute, descending into groups.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	if r == nil {
		return a
	}

	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	case slog.KindString:
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, RedactSecret(a.Value.String()))
		}
		return slog.String(a.Key, r.RedactString(a.Value.String()))
	default:
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, "***")
		}
		return a
	}
}

// IsSensitiveKey checks if a key name indicates credential data.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactSecret masks a credential completely, keeping only the auth scheme
// of an Authorization value so that logs still show what kind was sent.
func RedactSecret(value string) string {
	if value == "" {
		return ""
	}
	if scheme, _, ok := strings.Cut(value, " "); ok {
		return scheme + " ***"
	}
	return "***"
}
