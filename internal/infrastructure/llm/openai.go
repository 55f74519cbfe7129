package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/domain/repository"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// OpenAIClient implements repository.LLMClient with the chat completions API
// of OpenAI or any compatible endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient fails with content.ErrBackendUnavailable when no key is configured.
func NewOpenAIClient(apiKey, model, baseURL string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai API key is not configured", content.ErrBackendUnavailable)
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAIClient{client: openai.NewClient(reqOpts...), model: model}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, params content.Params) (repository.Completion, error) {
	log := logger.Component(ctx, "openai")
	log.Debug("sending request", "model", c.model, "max_tokens", params.MaxTokens)

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(float64(params.Temperature)),
		TopP:        openai.Float(float64(params.TopP)),
	}
	if params.MaxTokens > 0 {
		req.MaxCompletionTokens = openai.Int(int64(params.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return repository.Completion{}, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return repository.Completion{}, fmt.Errorf("%w: openai returned no choices", content.ErrBackendError)
	}

	out := repository.Completion{
		Text:         resp.Choices[0].Message.Content,
		Model:        resp.Model,
		PromptTokens: int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}
	if out.Model == "" {
		out.Model = c.model
	}
	log.Debug("response received", "model", out.Model, "output_tokens", out.OutputTokens)
	return out, nil
}

func (c *OpenAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s) [Cloud]", c.model)
}

// Close is a no-op; the SDK client holds no resources beyond its http.Client.
func (c *OpenAIClient) Close() error { return nil }
