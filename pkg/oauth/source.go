package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"pawhub/gateway/pkg/backend"
	"pawhub/gateway/pkg/config"
)

// ConfigPath is the gateway route that publishes the client ids.
const ConfigPath = "/api/oauth-config"

// ErrNotConfigured is returned when no provider has a client id.
var ErrNotConfigured = errors.New("no oauth client ids configured")

// ConfigSource reads client ids from the process configuration.
type ConfigSource struct {
	cfg config.OAuthConfig
}

// NewConfigSource returns a Source backed by cfg.
func NewConfigSource(cfg config.OAuthConfig) *ConfigSource {
	return &ConfigSource{cfg: cfg}
}

// ClientIDs returns the configured ids. Individual providers may be empty;
// ErrNotConfigured is returned only when all of them are.
func (s *ConfigSource) ClientIDs(ctx context.Context) (ClientIDs, error) {
	ids := ClientIDs{
		Google: s.cfg.GoogleClientID,
		Kakao:  s.cfg.KakaoClientID,
		Naver:  s.cfg.NaverClientID,
	}
	if ids == (ClientIDs{}) {
		return ClientIDs{}, ErrNotConfigured
	}
	return ids, nil
}

// HTTPSource fetches client ids from a running gateway's ConfigPath.
type HTTPSource struct {
	client *backend.Client
}

// NewHTTPSource returns a Source that queries the gateway behind client.
func NewHTTPSource(client *backend.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// ClientIDs fetches and decodes the gateway's published configuration.
func (s *HTTPSource) ClientIDs(ctx context.Context) (ClientIDs, error) {
	resp, err := s.client.Do(ctx, &backend.Request{
		Method: http.MethodGet,
		Path:   ConfigPath,
		Route:  "oauth.config",
	})
	if err != nil {
		return ClientIDs{}, fmt.Errorf("fetch oauth config: %w", err)
	}

	doc, err := resp.JSON()
	if err != nil {
		return ClientIDs{}, fmt.Errorf("decode oauth config: %w", err)
	}

	fields := gjson.GetManyBytes(doc, "google.clientId", "kakao.clientId", "naver.clientId")
	return ClientIDs{
		Google: fields[0].String(),
		Kakao:  fields[1].String(),
		Naver:  fields[2].String(),
	}, nil
}
