package prompt

import (
	"fmt"
	"strings"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

// RemoteBuilder writes long natural-language briefs for hosted models.
type RemoteBuilder struct{}

var (
	productLength = map[string]string{
		"short":    "50-100 words, concise and punchy",
		"medium":   "100-200 words, balanced detail",
		"long":     "200-300 words, comprehensive",
		"detailed": "300+ words, very thorough",
	}
	productTone = map[string]string{
		"professional": "formal, authoritative, business-focused",
		"casual":       "friendly, conversational, approachable",
		"luxury":       "premium, sophisticated, exclusive",
		"technical":    "detailed, specification-focused, precise",
		"enthusiastic": "energetic, exciting, dynamic",
	}
	productAudience = map[string]string{
		"general":       "broad appeal, easy to understand",
		"professionals": "industry-focused, technical benefits",
		"tech":          "feature-rich, innovation-focused",
		"young":         "trendy, lifestyle-focused",
		"families":      "practical, safety-focused",
		"seniors":       "clear benefits, easy-to-understand",
	}
	platformSpec = map[string]string{
		"twitter":   "Twitter (280 characters max, use hashtags, engaging)",
		"instagram": "Instagram (catchy, visual-focused, hashtags)",
		"linkedin":  "LinkedIn (professional, business-focused, thought leadership)",
		"facebook":  "Facebook (conversational, community-focused)",
		"tiktok":    "TikTok (trendy, youth-focused, viral potential)",
	}
	blogContentSpec = map[string]string{
		"article": "Complete blog article with introduction, body sections, and conclusion",
		"summary": "Concise summary with key points and takeaways",
		"outline": "Structured outline with main points and subpoints",
		"intro":   "Engaging introduction that hooks readers and sets up the topic",
	}
	blogStyle = map[string]string{
		"informative":    "educational, factual, and well-researched",
		"conversational": "friendly, approachable, and personal",
		"professional":   "business-focused, formal, and authoritative",
		"creative":       "engaging, imaginative, and unique",
		"technical":      "detailed, precise, and specification-focused",
		"storytelling":   "narrative-driven with compelling stories",
	}
	copySpec = map[string]string{
		"email":   "Email marketing campaign with subject line and body",
		"landing": "Landing page copy with headlines and sections",
		"ad":      "Short advertisement copy (under 100 words)",
		"sales":   "Long-form sales page with multiple sections",
	}
	marketingTone = map[string]string{
		"persuasive":    "compelling and convincing language",
		"urgent":        "time-sensitive and action-driven",
		"friendly":      "warm and approachable tone",
		"professional":  "business-focused and formal",
		"exciting":      "enthusiastic and energetic",
		"trustworthy":   "reliable and credible",
		"authoritative": "expert and confident",
	}
)

func (RemoteBuilder) Build(topic string, kind content.Kind, s content.Settings) string {
	switch kind {
	case content.KindSocial:
		return remoteSocial(topic, s)
	case content.KindBlog:
		return remoteBlog(topic, s)
	case content.KindMarketing:
		return remoteMarketing(topic, s)
	default:
		return remoteProduct(topic, s)
	}
}

func remoteProduct(topic string, s content.Settings) string {
	length := lookup(productLength, s.Length, "balanced detail")

	var b strings.Builder
	b.WriteString("You are an expert copywriter specializing in product descriptions.\n\n")
	fmt.Fprintf(&b, "PRODUCT INFORMATION:\n%s\n\n", topic)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Tone: %s\n", lookup(productTone, s.Tone, "formal, authoritative, business-focused"))
	fmt.Fprintf(&b, "- Length: %s\n", length)
	fmt.Fprintf(&b, "- Target Audience: %s\n", lookup(productAudience, s.Audience, "broad appeal"))
	fmt.Fprintf(&b, "- Category: %s\n", s.Category)
	if s.WordCount > 0 {
		fmt.Fprintf(&b, "- Target word count: about %d words\n", s.WordCount)
	}

	b.WriteString("\nADDITIONAL REQUIREMENTS:")
	if s.IncludeCTA {
		b.WriteString("\n- Include a compelling call-to-action")
	}
	if s.IncludeSpecs {
		b.WriteString("\n- Include key features/specifications section")
	}
	if s.SEOKeywords {
		b.WriteString("\n- Naturally include relevant SEO keywords")
	}
	if s.SEOMeta {
		b.WriteString("\n- Add a meta description at the end")
	}

	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString("1. Create a compelling product description that converts browsers into buyers\n")
	b.WriteString("2. Focus on benefits, not just features\n")
	fmt.Fprintf(&b, "3. Use emotional triggers appropriate for the %s audience\n", s.Audience)
	fmt.Fprintf(&b, "4. Maintain %s tone throughout\n", s.Tone)
	fmt.Fprintf(&b, "5. Target word count: %s\n", length)
	b.WriteString("6. Make it scannable with good structure\n")
	b.WriteString("7. Highlight what makes this product unique\n")
	b.WriteString("8. Address potential customer concerns\n\n")
	b.WriteString("Generate the product description now:")
	return b.String()
}

func remoteSocial(topic string, s content.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s %s social media post for %s.\n\n",
		s.Tone, s.PostType, lookup(platformSpec, s.Platform, "social media"))
	fmt.Fprintf(&b, "TOPIC: %s\nGOAL: %s\nTONE: %s\n\n", topic, s.Goal, s.Tone)
	b.WriteString("Requirements:\n")
	b.WriteString("- Platform-appropriate length and style\n")
	if s.AutoHashtags {
		fmt.Fprintf(&b, "- Include up to %d relevant hashtags\n", s.HashtagCount)
		if s.CustomHashtags != "" {
			fmt.Fprintf(&b, "- Use these hashtags: %s\n", s.CustomHashtags)
		}
	} else {
		b.WriteString("- Include relevant hashtags\n")
	}
	if s.IncludeEmojis {
		b.WriteString("- Use a few fitting emojis\n")
	}
	if s.IncludeQuestion {
		b.WriteString("- End with a question that invites comments\n")
	}
	b.WriteString("- Engage the audience\n")
	if s.IncludeCTA {
		b.WriteString("- Include a clear call-to-action\n")
	} else {
		b.WriteString("- Clear call-to-action if needed\n")
	}
	b.WriteString("- Authentic and shareable content\n\n")
	b.WriteString("Generate the social media post:")
	return b.String()
}

func remoteBlog(topic string, s content.Settings) string {
	style := lookup(blogStyle, s.Style, "informative")

	var b strings.Builder
	b.WriteString("You are an expert blog writer and content creator.\n\n")
	fmt.Fprintf(&b, "TOPIC: %s\n", topic)
	fmt.Fprintf(&b, "CONTENT TYPE: %s\n", lookup(blogContentSpec, s.ContentType, "Blog content"))
	fmt.Fprintf(&b, "WRITING STYLE: %s\n", style)
	fmt.Fprintf(&b, "TARGET LENGTH: %d words\n", s.WordCount)
	fmt.Fprintf(&b, "AUDIENCE: %s\n\n", s.Audience)
	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Create engaging, valuable content\n")
	b.WriteString("- Use clear headings and structure\n")
	b.WriteString("- Include actionable insights\n")
	fmt.Fprintf(&b, "- Write for %s audience\n", s.Audience)
	fmt.Fprintf(&b, "- Target approximately %d words\n", s.WordCount)
	fmt.Fprintf(&b, "- Use %s style", style)

	switch s.ContentType {
	case "article":
		b.WriteString("\n- Include multiple sections with H2/H3 headings\n- Add introduction and conclusion")
	case "summary":
		b.WriteString("\n- Focus on key points and takeaways\n- Use bullet points for clarity")
	case "outline":
		b.WriteString("\n- Create hierarchical structure\n- Include main points and subpoints")
	case "intro":
		b.WriteString("\n- Hook readers from the first sentence\n- Preview what they'll learn")
	}
	if s.MetaDescription {
		b.WriteString("\n- Include SEO meta description at the end")
	}
	if s.IncludeKeywords {
		b.WriteString("\n- Naturally incorporate relevant keywords")
	}
	if s.IncludeCTA {
		b.WriteString("\n- End with compelling call-to-action")
	}
	b.WriteString("\n\nGenerate the blog content now:")
	return b.String()
}

func remoteMarketing(topic string, s content.Settings) string {
	var b strings.Builder
	b.WriteString("You are an expert copywriter specializing in high-converting marketing content.\n\n")
	fmt.Fprintf(&b, "TOPIC: %s\n", topic)
	fmt.Fprintf(&b, "COPY TYPE: %s\n", lookup(copySpec, s.CopyType, "Marketing copy"))
	fmt.Fprintf(&b, "TONE: %s\n", lookup(marketingTone, s.Tone, "business-focused and formal"))
	fmt.Fprintf(&b, "GOAL: %s\n", s.Goal)
	fmt.Fprintf(&b, "AUDIENCE: %s\n\n", s.Audience)
	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Focus on benefits over features\n")
	b.WriteString("- Include compelling headlines\n")
	b.WriteString("- Use emotional triggers\n")
	b.WriteString("- Create urgency when appropriate\n")
	b.WriteString("- Include clear call-to-action\n")
	fmt.Fprintf(&b, "- Write for %s audience\n", s.Audience)
	fmt.Fprintf(&b, "- Optimize for %s", s.Goal)

	switch s.CopyType {
	case "email":
		b.WriteString("\n- Include engaging subject line\n- Structure: Subject + Body")
	case "landing":
		b.WriteString("\n- Include multiple sections with headers\n- Add social proof elements")
	case "ad":
		b.WriteString("\n- Keep under 100 words\n- Focus on one key benefit")
	case "sales":
		b.WriteString("\n- Create long-form content (300+ words)\n- Include guarantee and testimonials")
	}
	if s.IncludeUrgency {
		b.WriteString("\n- Add time-sensitive elements")
	}
	if s.IncludeGuarantee {
		b.WriteString("\n- Include money-back guarantee")
	}
	if s.IncludeSocialProof {
		b.WriteString("\n- Add customer testimonials or statistics")
	}
	b.WriteString("\n\nGenerate the marketing copy now:")
	return b.String()
}
