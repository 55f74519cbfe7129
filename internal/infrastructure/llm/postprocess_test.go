package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

func TestTruncatePrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		max    int
		want   string
	}{
		{"under cap", "short prompt", 100, "short prompt"},
		{"disabled", "anything goes", 0, "anything goes"},
		{"cuts at whitespace", "alpha beta gamma delta", 13, "alpha beta"},
		{"counts runes", "ééé ééé ééé", 7, "ééé ééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncatePrompt(tt.prompt, tt.max); got != tt.want {
				t.Errorf("TruncatePrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		prompt string
		kind   content.Kind
		s      content.Settings
		want   string
	}{
		{
			name:   "strips echoed prompt",
			raw:    "Write about mugs\n\nThis mug keeps drinks warm for hours.",
			prompt: "Write about mugs",
			kind:   content.KindBlog,
			want:   "This mug keeps drinks warm for hours.",
		},
		{
			name: "drops short trailing fragment",
			raw:  "Great product for everyone. It lasts for years. The",
			kind: content.KindBlog,
			want: "Great product for everyone. It lasts for years.",
		},
		{
			name: "keeps long trailing sentence",
			raw:  "Great product. And it keeps going strong",
			kind: content.KindBlog,
			want: "Great product. And it keeps going strong",
		},
		{
			name: "product gets CTA",
			raw:  "A sturdy bottle.",
			kind: content.KindProduct,
			s:    content.Settings{IncludeCTA: true},
			want: "A sturdy bottle. " + productCTA,
		},
		{
			name: "product with purchase wording keeps text",
			raw:  "Buy this sturdy bottle today.",
			kind: content.KindProduct,
			s:    content.Settings{IncludeCTA: true},
			want: "Buy this sturdy bottle today.",
		},
		{
			name: "marketing ends with exclamation",
			raw:  "Save big this weekend",
			kind: content.KindMarketing,
			want: "Save big this weekend!",
		},
		{
			name:   "empty after echo",
			raw:    "prompt only",
			prompt: "prompt only",
			kind:   content.KindSocial,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostProcess(tt.raw, tt.prompt, tt.kind, tt.s); got != tt.want {
				t.Errorf("PostProcess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostProcess_SocialLimit(t *testing.T) {
	raw := strings.Repeat("sunny days ahead ", 40)
	got := PostProcess(raw, "", content.KindSocial, content.Settings{})
	if n := utf8.RuneCountInString(got); n != SocialCharLimit {
		t.Errorf("expected %d runes, got %d", SocialCharLimit, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got[len(got)-10:])
	}
}
