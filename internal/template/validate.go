package template

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

type topicBounds struct {
	min, max int
	label    string
}

var bounds = map[content.Kind]topicBounds{
	content.KindProduct:   {10, 500, "Product information"},
	content.KindSocial:    {5, 0, "Topic"},
	content.KindBlog:      {10, 200, "Topic"},
	content.KindMarketing: {5, 300, "Topic"},
}

// Validate checks a topic against the input rules of kind and returns
// human-readable problems. An empty slice means the input is acceptable.
func Validate(kind content.Kind, topic string, s content.Settings) []string {
	b := bounds[kind]
	n := utf8.RuneCountInString(strings.TrimSpace(topic))

	errs := []string{}
	switch {
	case n == 0:
		errs = append(errs, b.label+" is required")
	case n < b.min:
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", b.label, b.min))
	case b.max > 0 && n > b.max:
		errs = append(errs, fmt.Sprintf("%s must be less than %d characters", b.label, b.max))
	}

	switch kind {
	case content.KindSocial:
		// Half the platform limit is left for template text.
		limit := PlatformLimit(s.Platform)
		if n > limit/2 {
			errs = append(errs, fmt.Sprintf("Topic too long for %s (max ~%d characters)", s.Platform, limit/2))
		}
	case content.KindMarketing:
		switch s.CopyType {
		case "email", "landing", "ad", "sales":
		default:
			errs = append(errs, "Invalid copy type")
		}
	}
	return errs
}
