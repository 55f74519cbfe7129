package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

func settings(kind content.Kind, raw map[string]any) content.Settings {
	return content.ParseSettings(kind, raw)
}

func TestGenerateLuxuryShortProduct(t *testing.T) {
	f := NewFallback(nil)

	got, err := f.Generate("wireless earbuds", content.KindProduct,
		settings(content.KindProduct, map[string]any{"tone": "luxury", "length": "short"}))

	require.NoError(t, err)
	assert.Equal(t, "Exquisite wireless earbuds crafted for the discerning connoisseur. Premium materials and sophisticated design.", got)
}

func TestGenerateFallsBackToDefaultStyle(t *testing.T) {
	f := NewFallback(nil)

	tests := []struct {
		name string
		kind content.Kind
		raw  map[string]any
		want string
	}{
		{"unknown product tone", content.KindProduct, map[string]any{"tone": "gothic"}, "Discover the superior quality of our lamp."},
		{"unknown product length", content.KindProduct, map[string]any{"tone": "casual", "length": "epic"}, "Looking for an awesome lamp?"},
		{"unknown platform", content.KindSocial, map[string]any{"platform": "myspace"}, "Check out our amazing lamp!"},
		{"unknown social tone", content.KindSocial, map[string]any{"platform": "twitter", "tone": "grumpy"}, "Introducing lamp - engineered"},
		{"unknown blog style", content.KindBlog, map[string]any{"style": "haiku", "wordCount": 0}, "# lamp: A Comprehensive Guide"},
		{"unknown blog type", content.KindBlog, map[string]any{"contentType": "poem", "wordCount": 0}, "# lamp - Key Points Summary"},
		{"unknown copy type", content.KindMarketing, map[string]any{"copyType": "fax", "tone": "unknown"}, "Subject: Don't Miss Out: lamp Inside!"},
		{"ad tone", content.KindMarketing, map[string]any{"copyType": "ad", "tone": "exciting"}, "BREAKTHROUGH: lamp Just Got 10x Easier!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Generate("lamp", tt.kind, settings(tt.kind, tt.raw))
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, Placeholder)
		})
	}
}

func TestGenerateEveryKindContainsTopic(t *testing.T) {
	f := NewFallback(nil)
	for _, kind := range content.Kinds {
		got, err := f.Generate("solar backpacks", kind, settings(kind, nil))
		require.NoError(t, err, kind)
		assert.NotEmpty(t, strings.TrimSpace(got), kind)
		assert.Contains(t, got, "solar backpacks", kind)
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	_, err := NewFallback(nil).Generate("   ", content.KindProduct, settings(content.KindProduct, nil))

	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrTemplateRender))
	assert.True(t, errors.Is(err, content.ErrEmptyTopic))
}

func TestGenerateMissingTemplate(t *testing.T) {
	f := NewFallback(&Store{})

	_, err := f.Generate("lamp", content.KindBlog, settings(content.KindBlog, nil))

	assert.ErrorIs(t, err, content.ErrTemplateRender)
}

func TestLengthRule(t *testing.T) {
	f := NewFallback(nil)

	// The informative article renders to under 200 words.
	long, err := f.Generate("edge computing", content.KindBlog, settings(content.KindBlog, map[string]any{"wordCount": 1000}))
	require.NoError(t, err)
	assert.Contains(t, long, "## Additional Insights")

	short, err := f.Generate("edge computing", content.KindBlog, settings(content.KindBlog, map[string]any{"wordCount": 50}))
	require.NoError(t, err)
	assert.NotContains(t, short, "## Additional Insights")
	assert.NotContains(t, short, "## Conclusion")
	assert.True(t, strings.HasPrefix(short, "# edge computing: A Comprehensive Guide"))

	plain, err := f.Generate("edge computing", content.KindBlog, settings(content.KindBlog, map[string]any{"wordCount": 240}))
	require.NoError(t, err)
	assert.NotContains(t, plain, "## Additional Insights")
	assert.Contains(t, plain, "## Conclusion")
}

func TestLengthRuleSingleParagraphTruncatesWords(t *testing.T) {
	f := NewFallback(nil)

	got, err := f.Generate("desk lamp", content.KindProduct,
		settings(content.KindProduct, map[string]any{"length": "long", "wordCount": 5}))

	require.NoError(t, err)
	assert.Len(t, strings.Fields(got), 5)
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestCTAIsIdempotent(t *testing.T) {
	f := NewFallback(nil)
	s := settings(content.KindProduct, map[string]any{"includeCTA": true, "includeSpecs": true, "seoKeywords": true})

	once, err := f.Generate("wireless earbuds", content.KindProduct, s)
	require.NoError(t, err)
	twice := f.ApplyFragments(once, "wireless earbuds", content.KindProduct, s)

	assert.Equal(t, once, twice)
	ctas := 0
	for _, cta := range productCTAs {
		ctas += strings.Count(once, cta)
	}
	assert.Equal(t, 1, ctas)
	assert.Equal(t, 1, strings.Count(once, "Key Features:"))
}

func TestFragmentsAreIdempotentForEveryKind(t *testing.T) {
	f := NewFallback(nil)
	raw := map[string]any{
		"includeCTA": true, "includeEmojis": true, "includeQuestion": true, "autoHashtags": true,
		"customHashtags": "launch, #spring", "metaDescription": true, "includeKeywords": true,
		"includeUrgency": true, "includeGuarantee": true, "includeSocialProof": true, "seoMeta": true,
	}
	for _, kind := range content.Kinds {
		s := settings(kind, raw)
		once, err := f.Generate("trail shoes", kind, s)
		require.NoError(t, err, kind)
		assert.Equal(t, once, f.ApplyFragments(once, "trail shoes", kind, s), kind)
	}
}

func TestCTAChoiceIsDeterministic(t *testing.T) {
	f := NewFallback(nil)
	s := settings(content.KindProduct, map[string]any{"includeCTA": true})

	first, err := f.Generate("standing desk", content.KindProduct, s)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := f.Generate("standing desk", content.KindProduct, s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSocialHashtags(t *testing.T) {
	f := NewFallback(nil)
	s := settings(content.KindSocial, map[string]any{
		"platform": "twitter", "autoHashtags": true, "hashtagCount": 6, "customHashtags": "launch",
	})

	got, err := f.Generate("smart bottle", content.KindSocial, s)
	require.NoError(t, err)

	lines := strings.Split(got, "\n\n")
	assert.Equal(t, "#innovation #quality #lifestyle #technology #trending #tech", lines[len(lines)-1])
}

func TestMarketingFragmentsRespectExistingText(t *testing.T) {
	f := NewFallback(nil)
	// The persuasive email already mentions a guarantee and customers.
	s := settings(content.KindMarketing, map[string]any{
		"includeGuarantee": true, "includeSocialProof": true, "includeUrgency": true,
	})

	got, err := f.Generate("meal kits", content.KindMarketing, s)
	require.NoError(t, err)

	assert.NotContains(t, got, guaranteeLine)
	assert.NotContains(t, got, socialProof)
	assert.Contains(t, got, urgencyLine)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		kind  content.Kind
		topic string
		raw   map[string]any
		valid bool
	}{
		{"product ok", content.KindProduct, "wireless earbuds", nil, true},
		{"product too short", content.KindProduct, "mug", nil, false},
		{"empty", content.KindBlog, "", nil, false},
		{"twitter too long", content.KindSocial, strings.Repeat("x", 150), map[string]any{"platform": "twitter"}, false},
		{"facebook long ok", content.KindSocial, strings.Repeat("x", 150), nil, true},
		{"bad copy type", content.KindMarketing, "meal kits", map[string]any{"copyType": "fax"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.kind, tt.topic, settings(tt.kind, tt.raw))
			assert.Equal(t, tt.valid, len(errs) == 0, errs)
		})
	}
}

func TestOptions(t *testing.T) {
	s := Default()
	for _, kind := range content.Kinds {
		assert.NotEmpty(t, s.Options(kind), kind)
	}
	assert.Equal(t, []string{"casual", "luxury", "professional"}, s.Options(content.KindProduct)["tones"])
}
