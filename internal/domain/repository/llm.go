package repository

import (
	"context"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// Completion is the raw text returned by a model before normalization.
type Completion struct {
	Text         string
	Model        string
	PromptTokens int
	OutputTokens int
}

// LLMClient generates text from a prompt.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params content.Params) (Completion, error)
	Name() string
	Close() error
}

// ModelRuntime is an LLMClient whose model must be resident in memory before
// use. Load and Unload are idempotent.
type ModelRuntime interface {
	LLMClient
	Load(ctx context.Context) error
	Unload(ctx context.Context) error
	Ping(ctx context.Context) error
}
