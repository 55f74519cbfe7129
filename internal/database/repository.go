package database

import (
	"context"
	"errors"

	"github.com/contentsage/contentsage-api/internal/database/models"
)

var ErrNotFound = errors.New("record not found")

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// HistoryFilter selects a page of history. Zero values mean no filter.
type HistoryFilter struct {
	Kind    string
	Search  string
	Page    int
	PerPage int
}

// Normalize clamps paging to sane bounds.
func (f HistoryFilter) Normalize() HistoryFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	return f
}

// Pagination describes where a page sits in the full result.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// NewPagination derives page counts from total.
func NewPagination(page, perPage, total int) Pagination {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

// HistoryUpdate carries the editable fields; nil means unchanged.
type HistoryUpdate struct {
	Topic      *string
	Content    *string
	Parameters map[string]any
}

// HistoryStats counts live entries.
type HistoryStats struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_type"`
}

// HistoryRepository persists generated content. Deleted entries are hidden
// from every read.
type HistoryRepository interface {
	SaveHistory(ctx context.Context, h *models.ContentHistory) (string, error)
	GetHistory(ctx context.Context, id string) (*models.ContentHistory, error)
	ListHistory(ctx context.Context, f HistoryFilter) ([]*models.ContentHistory, Pagination, error)
	UpdateHistory(ctx context.Context, id string, u HistoryUpdate) (*models.ContentHistory, error)
	DeleteHistory(ctx context.Context, id string) error
	HistoryStats(ctx context.Context) (HistoryStats, error)
}
