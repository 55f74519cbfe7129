package llm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// SocialCharLimit caps local-model social posts.
const SocialCharLimit = 280

const productCTA = "Order now and experience the difference!"

var buyWords = []string{"buy", "order", "purchase", "get"}

// TruncatePrompt keeps at most max runes of prompt, cutting back to the last
// whitespace so no word is split. A non-positive max disables the cap.
func TruncatePrompt(prompt string, max int) string {
	if max <= 0 || utf8.RuneCountInString(prompt) <= max {
		return prompt
	}
	runes := []rune(prompt)
	cut := string(runes[:max])
	if unicode.IsSpace(runes[max]) {
		return cut
	}
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut
}

// PostProcess cleans raw local-model output: the echoed prompt is stripped,
// a dangling sentence fragment is dropped and the kind-specific rules are
// applied.
func PostProcess(raw, prompt string, kind content.Kind, s content.Settings) string {
	text := strings.TrimSpace(raw)
	if p := strings.TrimSpace(prompt); p != "" {
		text = strings.TrimSpace(strings.TrimPrefix(text, p))
	}
	if text == "" {
		return ""
	}

	if sentences := strings.Split(text, "."); len(sentences) > 1 {
		if last := strings.TrimSpace(sentences[len(sentences)-1]); utf8.RuneCountInString(last) < 10 {
			text = strings.Join(sentences[:len(sentences)-1], ".") + "."
		}
	}

	switch kind {
	case content.KindSocial:
		if utf8.RuneCountInString(text) > SocialCharLimit {
			text = string([]rune(text)[:SocialCharLimit-3]) + "..."
		}
	case content.KindProduct:
		if s.IncludeCTA && !mentionsAny(text, buyWords) {
			text += " " + productCTA
		}
	case content.KindMarketing:
		if !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") && !strings.HasSuffix(text, ".") {
			text += "!"
		}
	}
	return text
}

func mentionsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
