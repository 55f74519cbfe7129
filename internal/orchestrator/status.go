package orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/contentsage/contentsage-api/internal/metrics"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// ModelInfo describes a registered backend together with its runtime state.
type ModelInfo struct {
	registry.Descriptor
	Available bool   `json:"available"`
	Loaded    bool   `json:"loaded"`
	Current   bool   `json:"current"`
	Circuit   string `json:"circuit"`
	Error     string `json:"error,omitempty"`
	Stats     Usage  `json:"stats"`
}

// Current returns the descriptor of the current backend.
func (o *Orchestrator) Current() ModelInfo {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.infoLocked(o.slots[o.current])
}

// Models lists every backend in registry order.
func (o *Orchestrator) Models() []ModelInfo {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]ModelInfo, 0, len(o.slots))
	for _, d := range o.reg.All() {
		out = append(out, o.infoLocked(o.slots[d.ID]))
	}
	return out
}

func (o *Orchestrator) infoLocked(s *slot) ModelInfo {
	info := ModelInfo{
		Descriptor: s.desc,
		Available:  s.available,
		Loaded:     s.ready(),
		Current:    s.desc.ID == o.current,
		Circuit:    s.breaker.CurrentState().String(),
		Stats:      o.stats[s.desc.ID].snapshot(),
	}
	if s.initErr != nil {
		info.Error = s.initErr.Error()
	}
	return info
}

// SystemStatus is the result of probing every backend.
type SystemStatus struct {
	CurrentBackend string      `json:"current_backend"`
	Backends       []ModelInfo `json:"backends"`
	Available      int         `json:"available"`
	CheckedAt      time.Time   `json:"checked_at"`
}

// Status re-probes local runtimes concurrently and reports every backend.
// Remote backends are reported from their construction outcome; probing them
// would spend quota.
func (o *Orchestrator) Status(ctx context.Context) SystemStatus {
	ds := o.reg.All()
	results := make([]error, len(ds))
	probed := make([]bool, len(ds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, d := range ds {
		o.mu.RLock()
		b := o.slots[d.ID].backend
		o.mu.RUnlock()

		p, ok := b.(pinger)
		if !ok {
			continue
		}
		probed[i] = true
		g.Go(func() error {
			results[i] = o.ping(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	o.mu.Lock()
	for i, d := range ds {
		if !probed[i] {
			continue
		}
		s := o.slots[d.ID]
		s.available = results[i] == nil
		s.initErr = results[i]
		metrics.SetAvailable(d.ID, s.available)
	}
	o.mu.Unlock()

	st := SystemStatus{CheckedAt: time.Now().UTC()}
	st.Backends = o.Models()
	for _, m := range st.Backends {
		if m.Current {
			st.CurrentBackend = m.ID
		}
		if m.Available {
			st.Available++
		}
	}
	logger.Component(ctx, "orchestrator").Debug("status probed", "available", st.Available, "total", len(ds))
	return st
}
