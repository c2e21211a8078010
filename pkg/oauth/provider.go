package oauth

import (
	"errors"
	"fmt"
	"net/url"
)

// Provider identifies a supported login provider.
type Provider string

const (
	Google Provider = "google"
	Kakao  Provider = "kakao"
	Naver  Provider = "naver"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{Google, Kakao, Naver}

// ErrUnknownProvider is returned for provider keys outside Providers.
var ErrUnknownProvider = errors.New("unknown oauth provider")

// ParseProvider validates a provider key.
func ParseProvider(name string) (Provider, error) {
	p := Provider(name)
	if _, ok := endpoints[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// ProviderConfig is everything needed to send a user to a provider's
// authorization page.
type ProviderConfig struct {
	Name                  Provider
	AuthorizationEndpoint string
	ClientID              string
	RedirectURI           string
	Scope                 string
}

// AuthURL encodes the configuration as an authorization URL with
// response_type=code.
func (pc ProviderConfig) AuthURL() string {
	params := url.Values{
		"client_id":     {pc.ClientID},
		"redirect_uri":  {pc.RedirectURI},
		"response_type": {"code"},
		"scope":         {pc.Scope},
	}
	return pc.AuthorizationEndpoint + "?" + params.Encode()
}

type endpoint struct {
	authorize   string
	redirectURI string
	scope       string
}

var endpoints = map[Provider]endpoint{
	Google: {
		authorize:   "https://accounts.google.com/o/oauth2/v2/auth",
		redirectURI: "http://localhost:3000/api/auth/callback/google",
		scope:       "email",
	},
	Kakao: {
		authorize:   "https://kauth.kakao.com/oauth/authorize",
		redirectURI: "http://localhost:3000/api/auth/callback/kakao",
		scope:       "profile_nickname",
	},
	Naver: {
		authorize:   "https://nid.naver.com/oauth2.0/authorize",
		redirectURI: "http://localhost:3000/api/auth/callback/naver",
		scope:       "name email",
	},
}

// ClientIDs holds one client id per provider.
type ClientIDs struct {
	Google string
	Kakao  string
	Naver  string
}

// FallbackClientIDs are cached when the client ids cannot be resolved.
var FallbackClientIDs = ClientIDs{
	Google: "your-google-client-id",
	Kakao:  "your-kakao-client-id",
	Naver:  "your-naver-client-id",
}

// For returns the client id of p.
func (ids ClientIDs) For(p Provider) string {
	switch p {
	case Google:
		return ids.Google
	case Kakao:
		return ids.Kakao
	case Naver:
		return ids.Naver
	}
	return ""
}

// Configs expands the ids into one ProviderConfig per provider.
func (ids ClientIDs) Configs() map[Provider]ProviderConfig {
	out := make(map[Provider]ProviderConfig, len(endpoints))
	for p, ep := range endpoints {
		out[p] = ProviderConfig{
			Name:                  p,
			AuthorizationEndpoint: ep.authorize,
			ClientID:              ids.For(p),
			RedirectURI:           ep.redirectURI,
			Scope:                 ep.scope,
		}
	}
	return out
}
