// Package prompt renders generation instructions for each backend family.
// Builders are pure: identical inputs give byte-identical prompts.
package prompt

import (
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/registry"
)

// Builder renders the instruction string for one backend family.
type Builder interface {
	Build(topic string, kind content.Kind, s content.Settings) string
}

// For returns the builder suited to a backend family.
func For(family registry.Family) Builder {
	if family == registry.FamilyLocal {
		return LocalBuilder{}
	}
	return RemoteBuilder{}
}

func lookup(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
