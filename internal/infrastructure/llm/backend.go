package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/domain/repository"
	"github.com/contentsage/contentsage-api/internal/registry"
)

// Request is one backend invocation. Kind and Settings only drive output
// post-processing; the prompt is already rendered.
type Request struct {
	Prompt   string
	Params   content.Params
	Kind     content.Kind
	Settings content.Settings
}

// Backend executes prompts for one registered backend. Implementations are
// RemoteBackend and LocalBackend.
type Backend interface {
	ID() string
	Family() registry.Family
	Execute(ctx context.Context, req Request) (repository.Completion, error)
	Close() error
}

// Loadable is implemented by backends whose model must be resident before use.
type Loadable interface {
	Load(ctx context.Context) error
	Unload(ctx context.Context) error
}

// RemoteBackend wraps a hosted API client. Handles are lightweight and stateless.
type RemoteBackend struct {
	id     string
	client repository.LLMClient
}

func NewRemoteBackend(id string, client repository.LLMClient) *RemoteBackend {
	return &RemoteBackend{id: id, client: client}
}

func (b *RemoteBackend) ID() string              { return b.id }
func (b *RemoteBackend) Family() registry.Family { return registry.FamilyRemote }
func (b *RemoteBackend) Close() error            { return b.client.Close() }

// Execute returns the trimmed completion. An empty response is a backend error.
func (b *RemoteBackend) Execute(ctx context.Context, req Request) (repository.Completion, error) {
	c, err := b.client.Generate(ctx, req.Prompt, req.Params)
	if err != nil {
		return repository.Completion{}, content.ClassifyBackendError(err)
	}
	c.Text = strings.TrimSpace(c.Text)
	if c.Text == "" {
		return repository.Completion{}, fmt.Errorf("%w: empty response from %s", content.ErrBackendError, b.client.Name())
	}
	return c, nil
}

// LocalBackend wraps a model runtime. Prompts are capped before invocation
// and raw output is cleaned up for the requested kind.
type LocalBackend struct {
	id             string
	runtime        repository.ModelRuntime
	maxPromptChars int
}

func NewLocalBackend(id string, runtime repository.ModelRuntime, maxPromptChars int) *LocalBackend {
	return &LocalBackend{id: id, runtime: runtime, maxPromptChars: maxPromptChars}
}

func (b *LocalBackend) ID() string              { return b.id }
func (b *LocalBackend) Family() registry.Family { return registry.FamilyLocal }
func (b *LocalBackend) Close() error            { return b.runtime.Close() }

func (b *LocalBackend) Load(ctx context.Context) error {
	if err := b.runtime.Load(ctx); err != nil {
		return content.ClassifyBackendError(err)
	}
	return nil
}

func (b *LocalBackend) Unload(ctx context.Context) error {
	return b.runtime.Unload(ctx)
}

// Ping reports whether the runtime can serve this backend's model.
func (b *LocalBackend) Ping(ctx context.Context) error {
	return b.runtime.Ping(ctx)
}

func (b *LocalBackend) Execute(ctx context.Context, req Request) (repository.Completion, error) {
	prompt := TruncatePrompt(req.Prompt, b.maxPromptChars)

	c, err := b.runtime.Generate(ctx, prompt, req.Params)
	if err != nil {
		return repository.Completion{}, content.ClassifyBackendError(err)
	}

	c.Text = PostProcess(c.Text, prompt, req.Kind, req.Settings)
	if c.Text == "" {
		return repository.Completion{}, fmt.Errorf("%w: empty response from %s", content.ErrBackendError, b.runtime.Name())
	}
	return c, nil
}
