// Package content holds the request and result types shared by the generation pipeline.
package content

import (
	"fmt"
	"strings"
)

// Kind is the category of content being generated.
type Kind string

const (
	KindProduct   Kind = "product"
	KindSocial    Kind = "social"
	KindBlog      Kind = "blog"
	KindMarketing Kind = "marketing"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindProduct, KindSocial, KindBlog, KindMarketing}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindProduct, KindSocial, KindBlog, KindMarketing:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContentKind, s)
}

func (k Kind) String() string { return string(k) }
