package content

import (
	"strconv"
	"strings"
)

// Settings is the typed, read-only view of caller-supplied style options.
// It is a value type; the generation pipeline never mutates a caller's copy.
type Settings struct {
	Tone     string
	Length   string
	Audience string
	Category string

	// social
	Platform       string
	PostType       string
	HashtagCount   int
	CustomHashtags string

	// blog
	ContentType string
	Style       string

	// marketing
	CopyType string
	Goal     string

	// WordCount is the target length in words. Zero means no target.
	WordCount int

	IncludeCTA         bool
	IncludeSpecs       bool
	SEOKeywords        bool
	SEOMeta            bool
	IncludeEmojis      bool
	IncludeQuestion    bool
	AutoHashtags       bool
	IncludeUrgency     bool
	IncludeGuarantee   bool
	IncludeSocialProof bool
	MetaDescription    bool
	IncludeKeywords    bool
}

// DefaultSettings returns the documented defaults for a kind.
func DefaultSettings(kind Kind) Settings {
	s := Settings{
		Tone:         "professional",
		Length:       "medium",
		Audience:     "general",
		Category:     "general",
		HashtagCount: 5,
	}
	switch kind {
	case KindSocial:
		s.Platform = "facebook"
		s.PostType = "promotional"
		s.Tone = "friendly"
		s.Goal = "engagement"
	case KindBlog:
		s.ContentType = "article"
		s.Style = "informative"
		s.WordCount = 500
	case KindMarketing:
		s.CopyType = "email"
		s.Tone = "persuasive"
		s.Goal = "conversion"
		s.Audience = "business"
	}
	return s
}

// ParseSettings overlays raw onto the kind defaults. Unknown keys are ignored
// and values of the wrong shape keep the default.
func ParseSettings(kind Kind, raw map[string]any) Settings {
	s := DefaultSettings(kind)
	if raw == nil {
		return s
	}

	str := func(key string, dst *string) {
		if v, ok := stringValue(raw[key]); ok && v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := boolValue(raw[key]); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := intValue(raw[key]); ok && v >= 0 {
			*dst = v
		}
	}

	str("tone", &s.Tone)
	str("length", &s.Length)
	str("audience", &s.Audience)
	str("category", &s.Category)
	str("platform", &s.Platform)
	str("postType", &s.PostType)
	str("customHashtags", &s.CustomHashtags)
	str("contentType", &s.ContentType)
	str("style", &s.Style)
	str("copyType", &s.CopyType)
	str("goal", &s.Goal)
	num("hashtagCount", &s.HashtagCount)
	num("wordCount", &s.WordCount)

	flag("includeCTA", &s.IncludeCTA)
	flag("includeSpecs", &s.IncludeSpecs)
	flag("seoKeywords", &s.SEOKeywords)
	flag("seoMeta", &s.SEOMeta)
	flag("includeEmojis", &s.IncludeEmojis)
	flag("includeQuestion", &s.IncludeQuestion)
	flag("autoHashtags", &s.AutoHashtags)
	flag("includeUrgency", &s.IncludeUrgency)
	flag("includeGuarantee", &s.IncludeGuarantee)
	flag("includeSocialProof", &s.IncludeSocialProof)
	flag("metaDescription", &s.MetaDescription)
	flag("includeKeywords", &s.IncludeKeywords)

	return s
}

func stringValue(v any) (string, bool) {
	if t, ok := v.(string); ok {
		return strings.TrimSpace(t), true
	}
	return "", false
}

func boolValue(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	}
	return false, false
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}
