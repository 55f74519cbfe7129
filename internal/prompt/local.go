package prompt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// LocalBuilder writes a short structured prefix that small local models
// continue from.
type LocalBuilder struct{}

type localFrame struct {
	prefix  string
	context string
	format  string
}

var localFrames = map[content.Kind]localFrame{
	content.KindProduct: {
		prefix:  "Write a compelling product description for:",
		context: "Focus on benefits, features, and why customers should buy this product.",
		format:  "Use persuasive language and include a call-to-action.",
	},
	content.KindSocial: {
		prefix:  "Create an engaging social media post about:",
		context: "Make it shareable, include relevant hashtags, and encourage interaction.",
		format:  "Keep it concise and platform-appropriate.",
	},
	content.KindBlog: {
		prefix:  "Write informative blog content about:",
		context: "Provide valuable insights and actionable information.",
		format:  "Use clear structure with headings and bullet points where appropriate.",
	},
	content.KindMarketing: {
		prefix:  "Create high-converting marketing copy for:",
		context: "Focus on benefits, address pain points, and drive action.",
		format:  "Use persuasive language and strong call-to-action.",
	},
}

var genericFrame = localFrame{
	prefix:  "Write creative content about:",
	context: "Be engaging and informative.",
	format:  "Use clear, compelling language.",
}

func (LocalBuilder) Build(topic string, kind content.Kind, s content.Settings) string {
	f, ok := localFrames[kind]
	if !ok {
		f = genericFrame
	}

	var b strings.Builder
	b.WriteString(f.prefix + " " + topic + "\n\n")
	b.WriteString(f.context + " " + f.format + "\n\n")

	if s.Tone != "" {
		b.WriteString("Tone: " + titleCase(s.Tone) + "\n")
	}
	if s.Audience != "" && s.Audience != "general" {
		b.WriteString("Target audience: " + s.Audience + "\n")
	}
	switch kind {
	case content.KindSocial:
		b.WriteString("Platform: " + titleCase(s.Platform) + "\n")
	case content.KindMarketing:
		b.WriteString("Format: " + s.CopyType + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
