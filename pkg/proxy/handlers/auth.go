package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"pawhub/gateway/pkg/config"
	"pawhub/gateway/pkg/oauth"
	"pawhub/gateway/pkg/proxy"
	"pawhub/gateway/pkg/proxy/types"
)

// OAuthConfigHandler serves GET /api/oauth-config with the configured
// client ids. Unset ids are published as empty strings.
type OAuthConfigHandler struct {
	Config config.OAuthConfig
}

// NewOAuthConfigHandler creates an OAuth config handler.
func NewOAuthConfigHandler(cfg config.OAuthConfig) *OAuthConfigHandler {
	return &OAuthConfigHandler{Config: cfg}
}

// ServeHTTP implements http.Handler.
func (h *OAuthConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	proxy.WriteJSON(w, http.StatusOK, types.OAuthConfigResponse{
		Google: types.ClientID{ClientID: h.Config.GoogleClientID},
		Kakao:  types.ClientID{ClientID: h.Config.KakaoClientID},
		Naver:  types.ClientID{ClientID: h.Config.NaverClientID},
	})
}

// LoginHandler serves GET /api/auth/login/{provider} by redirecting the
// browser to the provider's authorization page.
type LoginHandler struct {
	URLs AuthURLBuilder
}

// NewLoginHandler creates a login redirect handler.
func NewLoginHandler(urls AuthURLBuilder) *LoginHandler {
	return &LoginHandler{URLs: urls}
}

// ServeHTTP implements http.Handler.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("provider")

	location, err := h.URLs.BuildAuthURL(r.Context(), oauth.Provider(name))
	if err != nil {
		code := types.CodeInternalError
		status := http.StatusInternalServerError
		message := types.MessageInternalError
		if errors.Is(err, oauth.ErrUnknownProvider) {
			code = types.CodeUnknownProvider
			status = http.StatusBadRequest
			message = fmt.Sprintf("Unknown OAuth provider: %s", name)
		}
		slog.WarnContext(r.Context(), "cannot start oauth login", "provider", name, "error", err)
		proxy.WriteJSON(w, status, types.CodedError{Error: message, Code: code})
		return
	}

	proxy.Redirect(w, r, location)
}

// CallbackHandler serves GET /api/auth/callback. It returns the mock
// session without validating code or state.
type CallbackHandler struct{}

// NewCallbackHandler creates a mock callback handler.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{}
}

// ServeHTTP implements http.Handler.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	proxy.WriteJSON(w, http.StatusOK, oauth.Exchange("", q.Get("code")))
}

// ProviderCallbackHandler serves GET /api/auth/callback/{provider} and lands
// the browser back on the home page with a success or error flag.
type ProviderCallbackHandler struct{}

// NewProviderCallbackHandler creates a provider callback handler.
func NewProviderCallbackHandler() *ProviderCallbackHandler {
	return &ProviderCallbackHandler{}
}

// ServeHTTP implements http.Handler.
func (h *ProviderCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := oauth.ParseProvider(r.PathValue("provider"))
	if err != nil {
		slog.WarnContext(r.Context(), "oauth callback for unknown provider",
			"provider", r.PathValue("provider"),
		)
		proxy.Redirect(w, r, "/?error=unknown_provider")
		return
	}

	location := oauth.CallbackLocation(p, r.URL.Query())
	slog.InfoContext(r.Context(), "oauth callback", "provider", p, "location", location)
	proxy.Redirect(w, r, location)
}
