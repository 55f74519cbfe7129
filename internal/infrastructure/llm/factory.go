package llm

import (
	"context"
	"fmt"
	"net/http"

	oaioption "github.com/openai/openai-go/option"

	"github.com/contentsage/contentsage-api/internal/config"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// Factory builds a Backend for a registry descriptor from the service configuration.
type Factory struct {
	cfg  *config.Config
	http *http.Client
	// local drops the client-wide Timeout: a model pull on load outlives any
	// generation timeout, so Ollama calls are bounded by their context only.
	local *http.Client
}

// NewFactory returns a Factory. A nil http client means http.DefaultClient.
func NewFactory(cfg *config.Config, hc *http.Client) *Factory {
	if hc == nil {
		hc = http.DefaultClient
	}
	local := *hc
	local.Timeout = 0
	return &Factory{cfg: cfg, http: hc, local: &local}
}

// New routes the descriptor to the client for its provider. Remote clients
// without credentials fail with content.ErrBackendUnavailable.
func (f *Factory) New(ctx context.Context, d registry.Descriptor) (Backend, error) {
	var (
		b    Backend
		icon string
	)

	switch d.Provider {
	case registry.ProviderGemini:
		model := d.Model
		if f.cfg.GeminiModel != "" {
			model = f.cfg.GeminiModel
		}
		c, err := NewGeminiClient(ctx, f.cfg.GeminiAPIKey, model)
		if err != nil {
			return nil, err
		}
		b, icon = NewRemoteBackend(d.ID, c), "☁️"

	case registry.ProviderOpenAI:
		model := d.Model
		if f.cfg.OpenAIModel != "" {
			model = f.cfg.OpenAIModel
		}
		c, err := NewOpenAIClient(f.cfg.OpenAIAPIKey, model, f.cfg.OpenAIBaseURL,
			oaioption.WithHTTPClient(f.http))
		if err != nil {
			return nil, err
		}
		b, icon = NewRemoteBackend(d.ID, c), "☁️"

	case registry.ProviderOllama:
		c := NewOllamaClient(f.cfg.OllamaHost, d.Model,
			WithPullOnLoad(f.cfg.OllamaPullOnLoad),
			WithHTTPClient(f.local),
		)
		b, icon = NewLocalBackend(d.ID, c, f.cfg.LocalMaxPromptChars), "🏠"

	default:
		return nil, fmt.Errorf("%w: no client for provider %q", content.ErrBackendUnavailable, d.Provider)
	}

	logger.Component(ctx, "llm").Info("backend client created", "backend", d.ID, "provider", d.Provider, "icon", icon)
	return b, nil
}
