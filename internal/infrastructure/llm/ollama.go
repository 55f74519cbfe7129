package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/domain/repository"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// DefaultKeepAlive is how long Ollama keeps a loaded model resident between calls.
const DefaultKeepAlive = "30m"

// OllamaClient implements repository.ModelRuntime by calling a local Ollama server.
type OllamaClient struct {
	host       string
	model      string
	keepAlive  string
	pullOnLoad bool
	http       *http.Client
}

// OllamaOption configures an OllamaClient.
type OllamaOption func(*OllamaClient)

// WithPullOnLoad makes Load pull the model from the Ollama library first.
func WithPullOnLoad(pull bool) OllamaOption {
	return func(c *OllamaClient) { c.pullOnLoad = pull }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) OllamaOption {
	return func(c *OllamaClient) { c.http = hc }
}

// WithKeepAlive sets the keep_alive sent with load and generate requests.
func WithKeepAlive(d string) OllamaOption {
	return func(c *OllamaClient) { c.keepAlive = d }
}

// NewOllamaClient initializes a client for one model on an Ollama instance.
func NewOllamaClient(host, model string, opts ...OllamaOption) *OllamaClient {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	c := &OllamaClient{
		host:      strings.TrimRight(host, "/"),
		model:     model,
		keepAlive: DefaultKeepAlive,
		http:      http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ollamaOptions struct {
	Temperature   float32 `json:"temperature,omitempty"`
	TopP          float32 `json:"top_p,omitempty"`
	TopK          int     `json:"top_k,omitempty"`
	RepeatPenalty float32 `json:"repeat_penalty,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"`
}

type ollamaRequest struct {
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt,omitempty"`
	Raw       bool           `json:"raw,omitempty"`
	Stream    bool           `json:"stream"`
	KeepAlive any            `json:"keep_alive,omitempty"`
	Options   *ollamaOptions `json:"options,omitempty"`
}

type ollamaResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type ollamaPullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// Generate runs a raw completion: the prompt is continued as-is, without the
// model's chat template.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, params content.Params) (repository.Completion, error) {
	log := logger.Component(ctx, "ollama")
	log.Debug("sending request", "model", c.model, "num_predict", params.MaxTokens)

	var resp ollamaResponse
	err := c.post(ctx, "/api/generate", ollamaRequest{
		Model:     c.model,
		Prompt:    prompt,
		Raw:       true,
		Stream:    false,
		KeepAlive: c.keepAliveValue(),
		Options: &ollamaOptions{
			Temperature:   params.Temperature,
			TopP:          params.TopP,
			TopK:          params.TopK,
			RepeatPenalty: params.RepetitionPenalty,
			NumPredict:    params.MaxTokens,
		},
	}, &resp)
	if err != nil {
		return repository.Completion{}, err
	}

	log.Debug("response received", "model", c.model, "eval_count", resp.EvalCount)
	return repository.Completion{
		Text:         resp.Response,
		Model:        c.model,
		PromptTokens: resp.PromptEvalCount,
		OutputTokens: resp.EvalCount,
	}, nil
}

// Load makes the model resident, pulling it first when configured to.
func (c *OllamaClient) Load(ctx context.Context) error {
	if c.pullOnLoad {
		if err := c.PullModel(ctx, c.model); err != nil {
			return err
		}
	}
	logger.Component(ctx, "ollama").Info("loading model", "model", c.model, "keep_alive", c.keepAlive)
	return c.post(ctx, "/api/generate", ollamaRequest{Model: c.model, KeepAlive: c.keepAliveValue()}, nil)
}

// Unload asks Ollama to evict the model from memory immediately.
func (c *OllamaClient) Unload(ctx context.Context) error {
	logger.Component(ctx, "ollama").Info("unloading model", "model", c.model)
	return c.post(ctx, "/api/generate", ollamaRequest{Model: c.model, KeepAlive: 0}, nil)
}

// PullModel pulls the specified model from the Ollama library.
func (c *OllamaClient) PullModel(ctx context.Context, model string) error {
	log := logger.Component(ctx, "ollama")
	log.Info("pulling model", "model", model)

	if err := c.post(ctx, "/api/pull", ollamaPullRequest{Model: model, Stream: false}, nil); err != nil {
		return fmt.Errorf("ollama pull of %s failed: %w", model, err)
	}

	log.Info("model pulled", "model", model)
	return nil
}

// Ping checks that the server is reachable and, unless models are pulled on
// load, that the model is already present.
func (c *OllamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create ollama tags request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama unreachable: %v", content.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama tags returned status %d", content.ErrBackendUnavailable, resp.StatusCode)
	}
	if c.pullOnLoad {
		return nil
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to decode ollama tags response: %w", err)
	}
	for _, m := range tags.Models {
		if matchesModel(m.Name, c.model) || matchesModel(m.Model, c.model) {
			return nil
		}
	}
	return fmt.Errorf("%w: model %s is not pulled", content.ErrBackendUnavailable, c.model)
}

// matchesModel treats "name" and "name:latest" as the same tag.
func matchesModel(have, want string) bool {
	if have == want {
		return true
	}
	if !strings.Contains(want, ":") {
		return have == want+":latest"
	}
	return false
}

func (c *OllamaClient) keepAliveValue() any {
	if c.keepAlive == "" {
		return nil
	}
	return c.keepAlive
}

// Name returns the descriptive name of the client.
func (c *OllamaClient) Name() string {
	return fmt.Sprintf("Ollama (%s) [Local]", c.model)
}

// Close is a no-op; Unload releases the model.
func (c *OllamaClient) Close() error { return nil }

func (c *OllamaClient) post(ctx context.Context, path string, body, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: ollama returned error status %d: %s", content.ErrBackendUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("ollama returned error status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ollama response: %w", err)
	}
	logger.Component(ctx, "ollama").Debug("request completed", "path", path, "elapsed", time.Since(start))
	return nil
}
