package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ContentHistory is one saved generation.
type ContentHistory struct {
	bun.BaseModel `bun:"table:content_history,alias:ch"`

	ID             string         `bun:",pk" json:"id"`
	Kind           string         `bun:",notnull" json:"content_type"`
	Topic          string         `bun:",notnull" json:"prompt"`
	Content        string         `bun:",notnull" json:"generated_content"`
	BackendUsed    string         `bun:",notnull" json:"model_used"`
	Source         string         `bun:",notnull" json:"source"`
	FallbackFrom   string         `bun:",nullzero" json:"fallback_from,omitempty"`
	Parameters     map[string]any `bun:"type:json" json:"parameters,omitempty"`
	WordCount      int            `bun:",notnull" json:"word_count"`
	GenerationTime float64        `bun:",notnull" json:"generation_time"`
	CreatedAt      time.Time      `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time      `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt      time.Time      `bun:",soft_delete,nullzero" json:"-"`
}
