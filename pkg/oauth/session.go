package oauth

import (
	"net/url"
)

// Session is the triple the browser persists after a login.
type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MockSession is returned by every callback. The authorization code is not
// exchanged with the provider.
var MockSession = Session{
	UserID:       "mock-user-id",
	AccessToken:  "mock-access-token",
	RefreshToken: "mock-refresh-token",
}

// Exchange trades an authorization code for a session. It currently ignores
// code and returns MockSession.
func Exchange(p Provider, code string) Session {
	return MockSession
}

// CallbackLocation decides where a provider callback lands the browser:
// "/?error=<error>" when the provider reported an error, "/?error=no_code"
// when no code was supplied, otherwise "/?success=<provider>_login".
func CallbackLocation(p Provider, query url.Values) string {
	if e := query.Get("error"); e != "" {
		return "/?" + url.Values{"error": {e}}.Encode()
	}

	code := query.Get("code")
	if code == "" {
		return "/?error=no_code"
	}

	Exchange(p, code)
	return "/?" + url.Values{"success": {string(p) + "_login"}}.Encode()
}
