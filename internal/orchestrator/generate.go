package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/domain/repository"
	"github.com/contentsage/contentsage-api/internal/infrastructure/llm"
	"github.com/contentsage/contentsage-api/internal/infrastructure/resilience"
	"github.com/contentsage/contentsage-api/internal/metrics"
	"github.com/contentsage/contentsage-api/internal/prompt"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// Generate produces content for topic on the current backend. Any backend
// failure is recorded and answered from the template store instead; the
// returned error is non-nil only for invalid input, when the caller cancels
// ctx, or when the template fallback itself fails (content.ErrGenerationFailed).
// A cancelled call is not counted against the backend. raw is never modified.
func (o *Orchestrator) Generate(ctx context.Context, topic string, kind content.Kind, raw map[string]any) (content.Result, error) {
	start := time.Now()
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return content.Failed("", content.ErrEmptyTopic, 0), content.ErrEmptyTopic
	}
	settings := content.ParseSettings(kind, raw)

	s, b, id, err := o.acquire(ctx)
	if err == nil {
		var c repository.Completion
		c, err = o.execute(ctx, s, b, topic, kind, settings)
		if err == nil {
			o.record(id, true)
			res := content.NewResult(c.Text, id, content.SourceBackend, time.Since(start))
			res.Model = c.Model
			o.observe(id, kind, res)
			logger.Component(ctx, "orchestrator").Info("content generated",
				"backend", id, "kind", kind, "words", res.WordCount, "elapsed", res.GenerationTime)
			return res, nil
		}
	}

	if canceled(ctx) {
		logger.Component(ctx, "orchestrator").Info("generation abandoned by caller", "backend", id, "kind", kind)
		return content.Failed(id, ctx.Err(), time.Since(start)), ctx.Err()
	}
	if !errors.Is(err, errClosed) {
		o.record(id, false)
	}
	reason := content.Reason(err)
	metrics.BackendFailuresTotal.WithLabelValues(id, reason).Inc()
	logger.Component(ctx, "orchestrator").Warn("backend failed, falling back to templates",
		"backend", id, "kind", kind, "reason", reason, "error", err)

	return o.fallbackResult(ctx, id, reason, topic, kind, settings, start)
}

func (o *Orchestrator) fallbackResult(ctx context.Context, from, reason, topic string, kind content.Kind, s content.Settings, start time.Time) (content.Result, error) {
	text, err := o.fallback.Generate(topic, kind, s)
	if err != nil {
		err = fmt.Errorf("%w: %w", content.ErrGenerationFailed, err)
		logger.Error(ctx, "template fallback failed", err, "backend", from, "kind", kind)
		return content.Failed(from, err, time.Since(start)), err
	}

	res := content.NewResult(text, content.TemplateBackendID, content.SourceTemplate, time.Since(start))
	res.FallbackFrom = from
	res.FallbackReason = reason
	o.observe(content.TemplateBackendID, kind, res)
	return res, nil
}

// acquire leases the current backend and returns the client it leased. The
// lease must be returned with s.leases.Done once the backend call has
// finished. A current backend that is not ready is activated under the
// lifecycle lock, bounded by the call timeout. acquire does not wait for a
// switch or load already in progress and does not retry an activation that
// failed within the breaker cooldown; both report content.ErrBackendUnavailable.
func (o *Orchestrator) acquire(ctx context.Context) (*slot, llm.Backend, string, error) {
	o.mu.RLock()
	id := o.current
	s := o.slots[id]
	if o.closed {
		o.mu.RUnlock()
		return nil, nil, id, errClosed
	}
	if s.ready() {
		s.leases.Add(1)
		b := s.backend
		o.mu.RUnlock()
		return s, b, id, nil
	}
	o.mu.RUnlock()

	if !o.switchMu.TryLock() {
		return nil, nil, id, fmt.Errorf("%w: %s is being switched or loaded", content.ErrBackendUnavailable, id)
	}
	defer o.switchMu.Unlock()

	o.mu.RLock()
	id = o.current
	s = o.slots[id]
	closed := o.closed
	failedAt, lastErr := s.failedAt, s.initErr
	o.mu.RUnlock()

	if closed {
		return nil, nil, id, errClosed
	}
	if !failedAt.IsZero() && time.Since(failedAt) < o.breakerCooldown {
		return nil, nil, id, fmt.Errorf("%w: %s failed %s ago: %w",
			content.ErrBackendUnavailable, id, time.Since(failedAt).Round(time.Millisecond), lastErr)
	}

	actx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if err := o.activate(actx, id); err != nil {
		return nil, nil, id, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if !s.ready() {
		return nil, nil, id, fmt.Errorf("%w: %s", content.ErrBackendUnavailable, id)
	}
	s.leases.Add(1)
	return s, s.backend, id, nil
}

type outcome struct {
	completion repository.Completion
	err        error
}

// execute runs one call on the leased backend b under the breaker and the
// caller-side deadline. The lease is held until the backend returns, even
// after a timeout. A call the caller cancelled returns ctx.Err() unclassified.
func (o *Orchestrator) execute(ctx context.Context, s *slot, b llm.Backend, topic string, kind content.Kind, settings content.Settings) (repository.Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := llm.Request{
		Prompt:   prompt.For(s.desc.Family).Build(topic, kind, settings),
		Params:   paramsFor(s.desc.Family, kind),
		Kind:     kind,
		Settings: settings,
	}

	done := make(chan outcome, 1)
	go func() {
		defer s.leases.Done()
		var c repository.Completion
		err := s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
			var err error
			c, err = b.Execute(ctx, req)
			return err
		})
		done <- outcome{completion: c, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			if canceled(ctx) {
				return repository.Completion{}, ctx.Err()
			}
			return repository.Completion{}, classify(out.err)
		}
		if strings.TrimSpace(out.completion.Text) == "" {
			return repository.Completion{}, fmt.Errorf("%w: empty response from %s", content.ErrBackendError, s.desc.ID)
		}
		return out.completion, nil
	case <-ctx.Done():
		if canceled(ctx) {
			return repository.Completion{}, ctx.Err()
		}
		return repository.Completion{}, content.ClassifyBackendError(ctx.Err())
	}
}

func classify(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", content.ErrBackendUnavailable, err)
	}
	return content.ClassifyBackendError(err)
}

func paramsFor(f registry.Family, kind content.Kind) content.Params {
	if f == registry.FamilyLocal {
		return content.LocalParams(kind)
	}
	return content.RemoteParams(kind)
}

func (o *Orchestrator) observe(backend string, kind content.Kind, res content.Result) {
	metrics.GenerationsTotal.WithLabelValues(backend, string(res.Source), string(kind)).Inc()
	metrics.GenerationDuration.WithLabelValues(backend).Observe(res.GenerationTime)
}
