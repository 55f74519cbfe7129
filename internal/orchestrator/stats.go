package orchestrator

import (
	"math"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/registry"
)

const maxRecommendations = 3

type usage struct {
	uses      int
	successes int
}

// Usage is a snapshot of one backend's statistics.
type Usage struct {
	Uses        int     `json:"uses"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

func (u usage) snapshot() Usage {
	return Usage{Uses: u.uses, Successes: u.successes, SuccessRate: successRate(u.successes, u.uses)}
}

// successRate is successes/uses as a percentage rounded to one decimal. An
// unused backend reports 100.
func successRate(successes, uses int) float64 {
	if uses == 0 {
		return 100
	}
	return math.Round(float64(successes)/float64(uses)*1000) / 10
}

func (o *Orchestrator) record(id string, success bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	u, ok := o.stats[id]
	if !ok {
		return
	}
	u.uses++
	if success {
		u.successes++
	}
}

// Stats returns a copy of every backend's usage.
func (o *Orchestrator) Stats() map[string]Usage {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]Usage, len(o.stats))
	for id, u := range o.stats {
		out[id] = u.snapshot()
	}
	return out
}

// Recommend ranks the available backends for kind and returns at most three.
func (o *Orchestrator) Recommend(kind content.Kind, req registry.Requirements) []registry.Recommendation {
	scored := o.reg.Score(kind, req)

	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]registry.Recommendation, 0, maxRecommendations)
	for _, r := range scored {
		if s, ok := o.slots[r.Model]; !ok || !s.available {
			continue
		}
		out = append(out, r)
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}
