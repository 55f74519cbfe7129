// Package orchestrator decides which backend answers a generation request,
// owns the backend client lifecycle and falls back to templates when the
// selected backend fails.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/contentsage/contentsage-api/internal/config"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/infrastructure/llm"
	"github.com/contentsage/contentsage-api/internal/infrastructure/resilience"
	"github.com/contentsage/contentsage-api/internal/metrics"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/internal/template"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// BackendFactory constructs the client for a descriptor. *llm.Factory
// implements it.
type BackendFactory interface {
	New(ctx context.Context, d registry.Descriptor) (llm.Backend, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// slot is the lifecycle record of one registered backend. backend, loaded,
// available, initErr and failedAt are guarded by Orchestrator.mu.
type slot struct {
	desc      registry.Descriptor
	backend   llm.Backend
	loaded    bool
	available bool
	initErr   error
	// failedAt is when activation last failed; zero after a success.
	failedAt time.Time
	breaker  *resilience.CircuitBreaker
	leases   sync.WaitGroup
}

// ready reports whether generations may lease the slot.
func (s *slot) ready() bool {
	if s.backend == nil {
		return false
	}
	return !s.desc.Heavyweight() || s.loaded
}

// Orchestrator is the single owner of the current backend id, the backend
// clients and the usage statistics. Create it with New and share the pointer.
type Orchestrator struct {
	reg      *registry.Registry
	factory  BackendFactory
	fallback *template.Fallback

	defaultID        string
	timeout          time.Duration
	loadTimeout      time.Duration
	breakerThreshold int
	breakerCooldown  time.Duration

	// switchMu serializes client construction, load and release.
	switchMu sync.Mutex

	// mu guards current, closed, the mutable slot fields and stats.
	mu      sync.RWMutex
	current string
	closed  bool
	slots   map[string]*slot
	stats   map[string]*usage
}

var errClosed = fmt.Errorf("%w: orchestrator is closed", content.ErrBackendUnavailable)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithDefaultBackend(id string) Option {
	return func(o *Orchestrator) { o.defaultID = id }
}

// WithTimeout sets the caller-side deadline applied to each backend call.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLoadTimeout bounds loading a local model. Zero means the call timeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.loadTimeout = d }
}

func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(o *Orchestrator) {
		o.breakerThreshold = threshold
		o.breakerCooldown = cooldown
	}
}

func WithFallback(f *template.Fallback) Option {
	return func(o *Orchestrator) { o.fallback = f }
}

// FromConfig maps service configuration onto orchestrator options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithDefaultBackend(cfg.DefaultBackend),
		WithTimeout(cfg.BackendTimeout()),
		WithLoadTimeout(cfg.ModelLoadTimeout()),
		WithBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown()),
	}
}

// New builds the orchestrator. Remote clients are constructed eagerly and
// local runtimes are probed; failures only mark a backend unavailable. The
// default backend is then activated. An unregistered default is an error, an
// unavailable one is not: generation on it falls back to templates.
func New(ctx context.Context, reg *registry.Registry, factory BackendFactory, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		reg:              reg,
		factory:          factory,
		defaultID:        "gemini",
		timeout:          30 * time.Second,
		breakerThreshold: 5,
		breakerCooldown:  30 * time.Second,
		slots:            make(map[string]*slot),
		stats:            make(map[string]*usage),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.loadTimeout <= 0 {
		o.loadTimeout = o.timeout
	}
	if o.fallback == nil {
		o.fallback = template.NewFallback(nil)
	}

	if _, ok := reg.Lookup(o.defaultID); !ok {
		return nil, fmt.Errorf("%w: default backend %q", content.ErrUnknownBackend, o.defaultID)
	}

	log := logger.Component(ctx, "orchestrator")
	for _, d := range reg.All() {
		s := &slot{desc: d, breaker: resilience.NewCircuitBreaker(d.ID, o.breakerThreshold, o.breakerCooldown)}
		s.breaker.OnStateChange(func(name string, from, to resilience.State) {
			metrics.CircuitState.WithLabelValues(name).Set(float64(to))
			logger.Component(context.Background(), "orchestrator").Warn("circuit state changed",
				"backend", name, "from", from.String(), "to", to.String())
		})
		o.slots[d.ID] = s
		o.stats[d.ID] = &usage{}

		b, err := factory.New(ctx, d)
		if err != nil {
			s.initErr = err
			log.Warn("backend initialization failed", "backend", d.ID, "error", err)
			metrics.SetAvailable(d.ID, false)
			continue
		}
		s.backend = b
		s.available = true
		if p, ok := b.(pinger); ok {
			if err := o.ping(ctx, p); err != nil {
				s.available = false
				s.initErr = err
				log.Info("local backend not available", "backend", d.ID, "error", err)
			}
		}
		metrics.SetAvailable(d.ID, s.available)
	}

	o.current = o.defaultID
	if err := o.activate(ctx, o.defaultID); err != nil {
		log.Warn("default backend could not be activated; requests will use templates until it recovers",
			"backend", o.defaultID, "error", err)
	}
	log.Info("orchestrator initialized", "current", o.defaultID, "backends", len(o.slots))
	return o, nil
}

// Select makes id the current backend. Switching to a heavyweight backend
// first releases any other loaded heavyweight client, waiting for in-flight
// generations on it. An unknown id fails with content.ErrUnknownBackend and a
// failed initialization with content.ErrBackendUnavailable; neither changes
// the current backend.
func (o *Orchestrator) Select(ctx context.Context, id string) (registry.Descriptor, error) {
	d, ok := o.reg.Lookup(id)
	if !ok {
		metrics.BackendSwitchesTotal.WithLabelValues("unknown", "unknown_backend").Inc()
		return registry.Descriptor{}, fmt.Errorf("%w: %q", content.ErrUnknownBackend, id)
	}

	o.switchMu.Lock()
	defer o.switchMu.Unlock()

	log := logger.Component(ctx, "orchestrator")
	o.mu.RLock()
	prev, closed := o.current, o.closed
	o.mu.RUnlock()
	if closed {
		return registry.Descriptor{}, errClosed
	}

	if err := o.activate(ctx, id); err != nil {
		metrics.BackendSwitchesTotal.WithLabelValues(id, "unavailable").Inc()
		log.Warn("backend switch failed", "from", prev, "to", id, "error", err)
		return registry.Descriptor{}, err
	}

	o.mu.Lock()
	o.current = id
	o.mu.Unlock()

	metrics.BackendSwitchesTotal.WithLabelValues(id, "success").Inc()
	log.Info("backend switched", "from", prev, "to", id, "family", d.Family)
	return d, nil
}

// activate makes the slot for id ready, releasing every other loaded
// heavyweight slot first when id is heavyweight. Loading is bounded by the
// load timeout. A failure caused by the caller cancelling ctx does not mark
// the backend unavailable. Callers hold switchMu.
func (o *Orchestrator) activate(ctx context.Context, id string) error {
	s := o.slots[id]

	o.mu.RLock()
	ready, b := s.ready(), s.backend
	o.mu.RUnlock()
	if ready {
		return nil
	}

	if b == nil {
		nb, err := o.factory.New(ctx, s.desc)
		if err != nil {
			if canceled(ctx) {
				return ctx.Err()
			}
			o.markUnavailable(s, err)
			return fmt.Errorf("%w: %s: %w", content.ErrBackendUnavailable, id, err)
		}
		b = nb
		o.mu.Lock()
		s.backend = nb
		o.mu.Unlock()
	}

	if s.desc.Heavyweight() {
		for _, other := range o.slots {
			if other != s {
				o.release(ctx, other)
			}
		}
		if l, ok := b.(llm.Loadable); ok {
			if err := o.load(ctx, id, l); err != nil {
				if canceled(ctx) {
					return err
				}
				o.markUnavailable(s, err)
				return err
			}
		}
	}

	o.mu.Lock()
	s.loaded = s.desc.Heavyweight()
	s.available = true
	s.initErr = nil
	s.failedAt = time.Time{}
	o.mu.Unlock()
	metrics.SetAvailable(id, true)
	return nil
}

func (o *Orchestrator) load(ctx context.Context, id string, l llm.Loadable) error {
	lctx, cancel := context.WithTimeout(ctx, o.loadTimeout)
	defer cancel()

	err := l.Load(lctx)
	switch {
	case err == nil:
		return nil
	case canceled(ctx):
		return ctx.Err()
	case errors.Is(lctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: loading %s exceeded %s: %w", content.ErrBackendTimeout, id, o.loadTimeout, err)
	}
	return fmt.Errorf("%w: %s: %w", content.ErrBackendUnavailable, id, err)
}

// canceled reports whether the caller abandoned ctx, as opposed to its
// deadline expiring.
func canceled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// release unloads a loaded heavyweight slot once its in-flight generations
// finish. The unload is bounded by the load timeout. Callers hold switchMu.
func (o *Orchestrator) release(ctx context.Context, s *slot) {
	o.mu.Lock()
	if !s.loaded {
		o.mu.Unlock()
		return
	}
	s.loaded = false
	o.mu.Unlock()

	s.leases.Wait()

	if l, ok := s.backend.(llm.Loadable); ok {
		uctx, cancel := context.WithTimeout(ctx, o.loadTimeout)
		err := l.Unload(uctx)
		cancel()
		if err != nil {
			logger.Component(ctx, "orchestrator").Warn("failed to unload backend", "backend", s.desc.ID, "error", err)
			return
		}
	}
	logger.Component(ctx, "orchestrator").Info("backend released", "backend", s.desc.ID)
}

func (o *Orchestrator) markUnavailable(s *slot, err error) {
	o.mu.Lock()
	s.available = false
	s.initErr = err
	s.failedAt = time.Now()
	o.mu.Unlock()
	metrics.SetAvailable(s.desc.ID, false)
}

func (o *Orchestrator) ping(ctx context.Context, p pinger) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return p.Ping(ctx)
}

// Close releases loaded models and closes every client once its in-flight
// generations finish. Generations after Close are answered from templates.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.switchMu.Lock()
	defer o.switchMu.Unlock()

	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	var errs []error
	for _, d := range o.reg.All() {
		s := o.slots[d.ID]
		o.release(ctx, s)

		o.mu.Lock()
		b := s.backend
		s.backend = nil
		o.mu.Unlock()
		s.leases.Wait()

		if b != nil {
			if err := b.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", d.ID, err))
			}
		}
	}
	logger.Component(ctx, "orchestrator").Info("orchestrator closed")
	return errors.Join(errs...)
}
