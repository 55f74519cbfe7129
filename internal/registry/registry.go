// Package registry is the static catalog of generation backends and the
// scoring tables used to recommend one for a content kind.
package registry

import (
	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// Family is the capability class of a backend. It selects the prompt
// strategy and the client lifecycle.
type Family string

const (
	// FamilyRemote backends are hosted APIs behind a lightweight, stateless handle.
	FamilyRemote Family = "remote"
	// FamilyLocal backends are heavyweight models loaded into a local runtime.
	FamilyLocal Family = "local"
)

// Provider names the runtime that serves a backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// Descriptor is the immutable description of one backend.
type Descriptor struct {
	ID          string         `json:"key"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Family      Family         `json:"family"`
	Provider    Provider       `json:"provider"`
	Model       string         `json:"model"`
	Cost        string         `json:"cost"`
	Speed       string         `json:"speed"`
	Quality     string         `json:"quality"`
	Strengths   []string       `json:"strengths"`
	BestFor     []content.Kind `json:"best_for"`
}

// Heavyweight reports whether the backend must be loaded before use and
// released when switching away.
func (d Descriptor) Heavyweight() bool { return d.Family == FamilyLocal }

// Registry is an ordered, read-only set of descriptors.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
}

// New builds a registry preserving declaration order. Later duplicates are ignored.
func New(ds ...Descriptor) *Registry {
	r := &Registry{index: make(map[string]int, len(ds))}
	for _, d := range ds {
		if _, dup := r.index[d.ID]; dup {
			continue
		}
		r.index[d.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, d)
	}
	return r
}

// Default returns the built-in catalog.
func Default() *Registry {
	return New(catalog...)
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// All returns every descriptor in declaration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// IDs returns backend identifiers in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		ids[i] = d.ID
	}
	return ids
}

// Position is the declaration index of id, or -1.
func (r *Registry) Position(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

var catalog = []Descriptor{
	{
		ID:          "gemini",
		Name:        "Google Gemini",
		Description: "Google's hosted model. Fast, accurate and versatile",
		Family:      FamilyRemote,
		Provider:    ProviderGemini,
		Model:       "gemini-1.5-flash",
		Cost:        "Low",
		Speed:       "Fast",
		Quality:     "Excellent",
		Strengths:   []string{"Speed", "Quality", "Versatility", "Context Understanding"},
		BestFor:     []content.Kind{content.KindProduct, content.KindSocial, content.KindBlog, content.KindMarketing},
	},
	{
		ID:          "openai",
		Name:        "OpenAI GPT-4o mini",
		Description: "Hosted OpenAI chat model, or any OpenAI-compatible endpoint",
		Family:      FamilyRemote,
		Provider:    ProviderOpenAI,
		Model:       "gpt-4o-mini",
		Cost:        "Low",
		Speed:       "Medium",
		Quality:     "Excellent",
		Strengths:   []string{"Persuasive writing", "Instruction following", "Long context"},
		BestFor:     []content.Kind{content.KindProduct, content.KindBlog, content.KindMarketing},
	},
	{
		ID:          "llama3.2",
		Name:        "Llama 3.2 3B",
		Description: "Small Llama model served by Ollama. Reliable and private",
		Family:      FamilyLocal,
		Provider:    ProviderOllama,
		Model:       "llama3.2:3b",
		Cost:        "Free",
		Speed:       "Medium",
		Quality:     "Good",
		Strengths:   []string{"Free", "Offline", "Privacy-focused"},
		BestFor:     []content.Kind{content.KindProduct, content.KindSocial},
	},
	{
		ID:          "llama3.1",
		Name:        "Llama 3.1 8B",
		Description: "Larger Llama model. Better quality, slower generation",
		Family:      FamilyLocal,
		Provider:    ProviderOllama,
		Model:       "llama3.1:8b",
		Cost:        "Free",
		Speed:       "Slower",
		Quality:     "Very Good",
		Strengths:   []string{"Better quality", "More coherent", "Free"},
		BestFor:     []content.Kind{content.KindProduct, content.KindBlog, content.KindMarketing},
	},
	{
		ID:          "qwen2.5",
		Name:        "Qwen 2.5 1.5B",
		Description: "Lightweight local model. Fast and efficient",
		Family:      FamilyLocal,
		Provider:    ProviderOllama,
		Model:       "qwen2.5:1.5b",
		Cost:        "Free",
		Speed:       "Very Fast",
		Quality:     "Fair",
		Strengths:   []string{"Very fast", "Lightweight", "Low memory"},
		BestFor:     []content.Kind{content.KindSocial},
	},
	{
		ID:          "gemma2",
		Name:        "Gemma 2 2B",
		Description: "Compact Google open model. Good at short rewrites",
		Family:      FamilyLocal,
		Provider:    ProviderOllama,
		Model:       "gemma2:2b",
		Cost:        "Free",
		Speed:       "Fast",
		Quality:     "Good",
		Strengths:   []string{"Summarization", "Rewriting", "Compact"},
		BestFor:     []content.Kind{content.KindSocial, content.KindBlog},
	},
	{
		ID:          "mistral",
		Name:        "Mistral 7B",
		Description: "Mistral instruct model. Great for structured long-form text",
		Family:      FamilyLocal,
		Provider:    ProviderOllama,
		Model:       "mistral:7b",
		Cost:        "Free",
		Speed:       "Medium",
		Quality:     "Very Good",
		Strengths:   []string{"Structured output", "Long-form", "Paraphrasing"},
		BestFor:     []content.Kind{content.KindBlog},
	},
}
