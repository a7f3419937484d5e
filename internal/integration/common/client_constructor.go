package common

import (
	"github.com/futig/docqa/internal/config"
	pkgHTTP "github.com/futig/docqa/pkg/http"
	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIClient creates an OpenAI-compatible API client on top of the shared HTTP client setup.
// Authentication is handled by the auth transport so the token never reaches go-openai's config.
func NewOpenAIClient(cfg config.HTTPClientConfig) *openai.Client {
	httpClient := pkgHTTP.NewClient(
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithMaxConnsPerHost(cfg.MaxConnsPerHost),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	)

	clientCfg := openai.DefaultConfig("")
	clientCfg.BaseURL = cfg.Url
	clientCfg.HTTPClient = httpClient

	return openai.NewClientWithConfig(clientCfg)
}
