package registry

import (
	"sort"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// Requirements are the caller's ranking priorities.
type Requirements struct {
	PrioritySpeed   bool `json:"priority_speed"`
	PriorityQuality bool `json:"priority_quality"`
	PriorityCost    bool `json:"priority_cost"`
}

// Recommendation is one scored backend.
type Recommendation struct {
	Model  string `json:"model"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type baseScore struct {
	id     string
	score  int
	reason string
}

var baseScores = map[content.Kind][]baseScore{
	content.KindProduct: {
		{"gemini", 95, "Excellent for persuasive product descriptions"},
		{"openai", 90, "Strong persuasive copy from a second hosted provider"},
		{"llama3.1", 85, "Good quality, free local alternative"},
		{"llama3.2", 75, "Solid choice for basic product descriptions"},
	},
	content.KindSocial: {
		{"gemini", 98, "Perfect for engaging social content"},
		{"openai", 92, "Punchy short-form copy"},
		{"qwen2.5", 80, "Fast generation for social media"},
		{"llama3.2", 70, "Decent for basic social posts"},
	},
	content.KindBlog: {
		{"gemini", 92, "Best for comprehensive blog content"},
		{"openai", 90, "Coherent long-form articles"},
		{"mistral", 88, "Excellent for structured content"},
		{"llama3.1", 82, "Good for longer articles"},
	},
	content.KindMarketing: {
		{"gemini", 96, "Superior persuasive writing abilities"},
		{"openai", 91, "Conversion-focused copy"},
		{"llama3.1", 78, "Decent marketing copy generation"},
		{"llama3.2", 68, "Basic marketing content"},
	},
}

var (
	speedBonus   = map[string]int{"qwen2.5": 15, "gemini": 10, "llama3.2": 5, "gemma2": 5}
	qualityBonus = map[string]int{"gemini": 20, "openai": 15, "llama3.1": 10, "mistral": 10}
	costBonus    = map[string]int{"llama3.2": 15, "llama3.1": 15, "qwen2.5": 15, "gemma2": 15, "mistral": 15}
)

// Score ranks the candidates for kind by base score plus the requested
// bonuses, descending, ties broken by declaration order. Candidates that are
// not registered in r are skipped. The result is not truncated or filtered
// by availability.
func (r *Registry) Score(kind content.Kind, req Requirements) []Recommendation {
	var out []Recommendation
	for _, b := range baseScores[kind] {
		d, ok := r.Lookup(b.id)
		if !ok {
			continue
		}
		score := b.score
		if req.PrioritySpeed {
			score += speedBonus[b.id]
		}
		if req.PriorityQuality {
			score += qualityBonus[b.id]
		}
		if req.PriorityCost {
			score += costBonus[b.id]
		}
		out = append(out, Recommendation{Model: b.id, Name: d.Name, Score: score, Reason: b.reason})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return r.Position(out[i].Model) < r.Position(out[j].Model)
	})
	return out
}
