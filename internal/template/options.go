package template

import (
	"sort"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// Option is a selectable value with a human label.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Platform describes a social network's posting constraints.
type Platform struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CharacterLimit   int    `json:"character_limit"`
	SupportsHashtags bool   `json:"supports_hashtags"`
	SupportsEmojis   bool   `json:"supports_emojis"`
}

// Platforms lists the supported social networks.
var Platforms = []Platform{
	{ID: "facebook", Name: "Facebook", CharacterLimit: 63206, SupportsHashtags: true, SupportsEmojis: true},
	{ID: "instagram", Name: "Instagram", CharacterLimit: 2200, SupportsHashtags: true, SupportsEmojis: true},
	{ID: "twitter", Name: "Twitter", CharacterLimit: 280, SupportsHashtags: true, SupportsEmojis: true},
	{ID: "linkedin", Name: "LinkedIn", CharacterLimit: 3000, SupportsHashtags: true, SupportsEmojis: false},
}

// PlatformLimit returns the character limit of a platform, 280 when unknown.
func PlatformLimit(id string) int {
	for _, p := range Platforms {
		if p.ID == id {
			return p.CharacterLimit
		}
	}
	return 280
}

// Options returns the selectable settings for a kind, for building forms.
func (s *Store) Options(kind content.Kind) map[string]any {
	switch kind {
	case content.KindProduct:
		return map[string]any{
			"tones":      sortedKeys(s.product),
			"lengths":    []string{"short", "medium", "long"},
			"categories": []string{"electronics", "fashion", "home", "beauty", "sports", "books", "automotive", "food"},
			"audiences":  []string{"general", "professionals", "tech", "young", "families", "seniors"},
		}
	case content.KindSocial:
		return map[string]any{
			"platforms":  Platforms,
			"post_types": []string{"promotional", "educational", "engagement", "storytelling", "announcement"},
			"tones":      []string{"friendly", "professional", "casual", "enthusiastic", "inspiring", "humorous", "urgent"},
		}
	case content.KindBlog:
		return map[string]any{
			"content_types": []Option{
				{ID: "article", Name: "Full Article", Description: "Complete blog article with sections"},
				{ID: "summary", Name: "Summary", Description: "Brief overview with key points"},
				{ID: "outline", Name: "Outline", Description: "Structured content outline"},
				{ID: "intro", Name: "Introduction", Description: "Engaging article introduction"},
			},
			"writing_styles": s.article.keys(),
			"word_counts":    []int{300, 500, 800, 1000, 1500, 2000},
			"audiences":      []string{"general", "beginners", "professionals", "experts", "students", "entrepreneurs"},
		}
	case content.KindMarketing:
		return map[string]any{
			"copy_types": []Option{
				{ID: "email", Name: "Email Copy", Description: "Email campaigns and newsletters"},
				{ID: "landing", Name: "Landing Page", Description: "High-converting landing pages"},
				{ID: "ad", Name: "Ad Copy", Description: "Short-form advertisement copy"},
				{ID: "sales", Name: "Sales Page", Description: "Long-form sales pages"},
			},
			"tones":     []string{"persuasive", "urgent", "friendly", "professional", "exciting", "trustworthy", "authoritative"},
			"goals":     []string{"conversion", "awareness", "engagement", "retention", "leads", "sales"},
			"audiences": []string{"business", "consumers", "young", "families", "seniors", "entrepreneurs", "students"},
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
