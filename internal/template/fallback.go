package template

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// Length adjustment kicks in when the target is this far from the rendered size.
const (
	shrinkRatio = 0.7
	growRatio   = 1.3
)

var productCTAs = []string{
	"Order now and experience the difference!",
	"Get yours today - limited stock available!",
	"Don't wait - transform your experience today!",
}

var socialCTAs = map[string]string{
	"facebook":  "Ready to experience the difference? Click the link in bio!",
	"instagram": "Tap the link in bio to get yours! 👆",
	"twitter":   "Get yours now 👇",
	"linkedin":  "Learn more about how this can benefit your organization.",
}

var socialQuestions = []string{
	"What do you think? Let us know in the comments!",
	"Have you tried something like this before? Share your experience!",
	"Which feature excites you the most? Tell us below!",
}

var emojiSets = map[string][]string{
	"enthusiastic": {"🔥", "✨", "🚀", "💯", "🎉"},
	"friendly":     {"😊", "👋", "💙", "🌟", "✨"},
	"professional": {"💼", "🎯", "📈", "⭐", "🏆"},
}

const (
	productSpecs   = "Key Features:\n• Premium materials and construction\n• Advanced performance capabilities\n• Quality tested and certified"
	blogCTAHeading = "## Ready to Get Started?"
	urgencyLine    = "⏰ Limited Time Offer - Don't Miss Out!"
	guaranteeLine  = "💰 30-Day Money-Back Guarantee - Risk Free!"
	socialProof    = "⭐ Join 10,000+ satisfied customers who already transformed their results!"
)

// Fallback renders template-based content. It never calls a model and the
// same inputs always produce the same text.
type Fallback struct {
	store *Store
}

// NewFallback returns a generator over store, or the built-in store when nil.
func NewFallback(store *Store) *Fallback {
	if store == nil {
		store = Default()
	}
	return &Fallback{store: store}
}

// Generate renders topic into the template selected by kind and settings,
// adjusts its length towards the word target and appends the optional
// fragments requested by settings.
func (f *Fallback) Generate(topic string, kind content.Kind, s content.Settings) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: %w", content.ErrTemplateRender, content.ErrEmptyTopic)
	}

	base := f.lookup(kind, s)
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("%w: no template for %s", content.ErrTemplateRender, kind)
	}

	text := render(base, topic)
	text = f.adjustLength(text, topic, kind, s.WordCount)
	return f.ApplyFragments(text, topic, kind, s), nil
}

func render(tmpl, topic string) string {
	return strings.ReplaceAll(tmpl, Placeholder, topic)
}

func (f *Fallback) lookup(kind content.Kind, s content.Settings) string {
	switch kind {
	case content.KindProduct:
		lengths, ok := f.store.product[s.Tone]
		if !ok {
			lengths = f.store.product["professional"]
		}
		if t, ok := lengths.get(s.Length); ok {
			return t
		}
		t, _ := lengths.get("medium")
		return t

	case content.KindSocial:
		types, ok := f.store.social[s.Platform]
		if !ok {
			types = f.store.social["facebook"]
		}
		tones, ok := types[s.PostType]
		if !ok {
			tones = types["promotional"]
		}
		return tones.pick(s.Tone)

	case content.KindBlog:
		if s.ContentType == "" || s.ContentType == "article" {
			return f.store.article.pick(s.Style)
		}
		if t, ok := f.store.blog[s.ContentType]; ok {
			return t
		}
		return f.store.blog["summary"]

	case content.KindMarketing:
		switch s.CopyType {
		case "landing":
			return f.store.landing.pick(s.Tone)
		case "ad":
			return f.store.ad.pick(s.Tone)
		case "sales":
			return f.store.sales
		default:
			e, ok := f.store.email[s.Tone]
			if !ok {
				e = f.store.email["persuasive"]
			}
			if e.body == "" {
				return ""
			}
			return "Subject: " + e.subject + "\n\n" + e.body
		}
	}
	return ""
}

// adjustLength applies the 0.7/1.3 rule against target. A zero target
// leaves text untouched.
func (f *Fallback) adjustLength(text, topic string, kind content.Kind, target int) string {
	if target <= 0 {
		return text
	}
	current := len(strings.Fields(text))

	switch {
	case float64(target) < float64(current)*shrinkRatio:
		paragraphs := strings.Split(text, "\n\n")
		if len(paragraphs) > 1 {
			keep := len(paragraphs) / 2
			return strings.Join(paragraphs[:keep], "\n\n")
		}
		return truncateWords(text, target)

	case float64(target) > float64(current)*growRatio:
		if extra, ok := f.store.expansion[kind]; ok {
			return text + "\n\n" + render(extra, topic)
		}
	}
	return text
}

func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if n < 1 {
		n = 1
	}
	if len(words) <= n {
		return text
	}
	out := strings.Join(words[:n], " ")
	out = strings.TrimRight(out, ",;:-")
	if !strings.HasSuffix(out, ".") && !strings.HasSuffix(out, "!") && !strings.HasSuffix(out, "?") {
		out += "."
	}
	return out
}

// ApplyFragments appends the optional fragments requested by s. Each fragment
// is skipped when equivalent text is already present, so applying it to its
// own output is a no-op.
func (f *Fallback) ApplyFragments(text, topic string, kind content.Kind, s content.Settings) string {
	switch kind {
	case content.KindProduct:
		if s.IncludeCTA && !containsAny(text, productCTAs...) {
			text += "\n\n" + choose(productCTAs, topic)
		}
		if s.IncludeSpecs {
			text = appendOnce(text, productSpecs, "key features:")
		}
		if s.SEOKeywords {
			text = appendOnce(text,
				fmt.Sprintf("Keywords: %s, premium, quality, reliable, professional", topic), "keywords:")
		}
		if s.SEOMeta {
			text = appendOnce(text,
				fmt.Sprintf("Meta Description: %s. Premium quality, reliable performance and real value.", topic),
				"meta description:")
		}

	case content.KindSocial:
		if s.IncludeEmojis {
			text = appendEmojis(text, s.Platform, s.Tone)
		}
		if s.IncludeCTA {
			cta, ok := socialCTAs[s.Platform]
			if !ok {
				cta = socialCTAs["facebook"]
			}
			text = appendOnce(text, cta, cta)
		}
		if s.IncludeQuestion && !containsAny(text, socialQuestions...) {
			text += "\n\n" + choose(socialQuestions, topic)
		}
		if s.AutoHashtags {
			if line := f.hashtagLine(s); line != "" {
				text = appendOnce(text, line, line)
			}
		}

	case content.KindBlog:
		if s.MetaDescription && !containsFold(text, "**meta description:**") {
			text = fmt.Sprintf("**Meta Description:** Comprehensive guide to %s covering key concepts, benefits, implementation strategies, and best practices.\n\n", topic) + text
		}
		if s.IncludeKeywords {
			text = appendOnce(text,
				fmt.Sprintf("**Target Keywords:** %s, implementation, benefits, strategy, guide, best practices", topic),
				"**target keywords:**")
		}
		if s.IncludeCTA {
			text = appendOnce(text,
				blogCTAHeading+"\n\n"+fmt.Sprintf("Now that you understand the fundamentals of %s, it's time to take action. Start with small steps, apply what you've learned, and gradually build your expertise. Remember, every expert was once a beginner.", topic),
				blogCTAHeading)
		}

	case content.KindMarketing:
		if s.IncludeUrgency {
			text = appendOnce(text, urgencyLine, "limited time")
		}
		if s.IncludeGuarantee {
			text = appendOnce(text, guaranteeLine, "guarantee")
		}
		if s.IncludeSocialProof {
			text = appendOnce(text, socialProof, "customers")
		}
	}
	return text
}

func (f *Fallback) hashtagLine(s content.Settings) string {
	tags := append([]string{}, f.store.baseTags...)
	tags = append(tags, f.store.hashtags[s.Platform]...)
	for _, t := range strings.Split(s.CustomHashtags, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		tags = append(tags, t)
	}
	if s.HashtagCount < len(tags) {
		tags = tags[:s.HashtagCount]
	}
	return strings.Join(tags, " ")
}

func appendEmojis(text, platform, tone string) string {
	set, ok := emojiSets[tone]
	if !ok {
		set = emojiSets["friendly"]
	}
	var n int
	switch platform {
	case "instagram", "facebook":
		n = 3
	case "twitter":
		n = 2
	default:
		return text
	}
	emojis := strings.Join(set[:n], " ")
	if strings.Contains(text, emojis) {
		return text
	}
	return text + " " + emojis
}

// appendOnce appends fragment as a new paragraph unless marker is already
// present, compared case-insensitively.
func appendOnce(text, fragment, marker string) string {
	if containsFold(text, marker) {
		return text
	}
	return text + "\n\n" + fragment
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsAny(s string, candidates ...string) bool {
	for _, c := range candidates {
		if containsFold(s, c) {
			return true
		}
	}
	return false
}

// choose picks an option deterministically from the topic.
func choose(options []string, topic string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(topic)))
	return options[h.Sum32()%uint32(len(options))]
}
