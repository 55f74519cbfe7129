package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/domain/repository"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// GeminiClient implements repository.LLMClient against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient fails with content.ErrBackendUnavailable when no key is configured.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is not configured", content.ErrBackendUnavailable)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", content.ErrBackendUnavailable, err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Generate sends prompt to Gemini. A fresh model handle is configured per call
// so concurrent requests with different parameters do not share state.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, params content.Params) (repository.Completion, error) {
	log := logger.Component(ctx, "gemini")
	log.Debug("sending request", "model", c.model, "max_tokens", params.MaxTokens)

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(params.Temperature)
	m.SetTopP(params.TopP)
	if params.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(params.MaxTokens))
	}
	if params.TopK > 0 {
		m.SetTopK(int32(params.TopK))
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return repository.Completion{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return repository.Completion{}, err
	}

	out := repository.Completion{Text: text, Model: c.model}
	if resp.UsageMetadata != nil {
		out.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	log.Debug("response received", "model", c.model, "output_tokens", out.OutputTokens)
	return out, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned from gemini", content.ErrBackendError)
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("%w: gemini candidate has no content (finish reason %v)", content.ErrBackendError, cand.FinishReason)
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: unexpected response format from gemini", content.ErrBackendError)
	}
	return b.String(), nil
}

func (c *GeminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s) [Cloud]", c.model)
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
