package bunstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/database/models"
)

func newTestStore(t *testing.T) *BunStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seed(t *testing.T, s *BunStore, kind, topic, text string, at time.Time) string {
	t.Helper()
	id, err := s.SaveHistory(context.Background(), &models.ContentHistory{
		Kind:        kind,
		Topic:       topic,
		Content:     text,
		BackendUsed: "gemini",
		Source:      "backend",
		Parameters:  map[string]any{"tone": "casual"},
		WordCount:   len(text),
		CreatedAt:   at,
	})
	require.NoError(t, err)
	return id
}

func TestSaveAndGetHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := seed(t, s, "product", "wireless earbuds", "Crisp sound.", time.Now())
	assert.Len(t, id, 36)

	got, err := s.GetHistory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "wireless earbuds", got.Topic)
	assert.Equal(t, "casual", got.Parameters["tone"])
	assert.False(t, got.UpdatedAt.IsZero())

	_, err = s.GetHistory(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestListHistoryFiltersAndPages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seed(t, s, "blog", fmt.Sprintf("garden post %d", i), "Plants need light.", base.Add(time.Duration(i)*time.Minute))
	}
	seed(t, s, "social", "coffee launch", "New roast is here.", base.Add(time.Hour))

	items, page, err := s.ListHistory(ctx, database.HistoryFilter{Kind: "blog", PerPage: 2, Page: 1})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "garden post 4", items[0].Topic)
	assert.Equal(t, database.Pagination{Page: 1, PerPage: 2, Total: 5, Pages: 3, HasPrev: false, HasNext: true}, page)

	items, page, err = s.ListHistory(ctx, database.HistoryFilter{Kind: "blog", PerPage: 2, Page: 3})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "garden post 0", items[0].Topic)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)

	items, _, err = s.ListHistory(ctx, database.HistoryFilter{Search: "roast"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "coffee launch", items[0].Topic)

	items, page, err = s.ListHistory(ctx, database.HistoryFilter{Search: "nothing matches"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, page.Total)
}

func TestListHistorySearchMatchesWildcardsLiterally(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	seed(t, s, "product", "100% cotton shirt", "Soft.", now)
	seed(t, s, "product", "1000 cotton threads", "Strong.", now.Add(-time.Minute))
	seed(t, s, "blog", "under_score naming", "Tips.", now.Add(-2*time.Minute))
	seed(t, s, "blog", "underXscore naming", "Tricks.", now.Add(-3*time.Minute))
	seed(t, s, "social", "wow! launch", "Big!", now.Add(-4*time.Minute))

	tests := []struct {
		search string
		want   string
	}{
		{"100%", "100% cotton shirt"},
		{"under_", "under_score naming"},
		{"wow!", "wow! launch"},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, page, err := s.ListHistory(ctx, database.HistoryFilter{Search: tt.search})
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Topic)
			assert.Equal(t, 1, page.Total)
		})
	}
}

func TestUpdateHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seed(t, s, "marketing", "spring sale", "Save now!", time.Now())

	edited := "Save 20% this spring!"
	got, err := s.UpdateHistory(ctx, id, database.HistoryUpdate{Content: &edited})
	require.NoError(t, err)
	assert.Equal(t, edited, got.Content)

	reloaded, err := s.GetHistory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, edited, reloaded.Content)
	assert.Equal(t, "spring sale", reloaded.Topic)

	_, err = s.UpdateHistory(ctx, "missing", database.HistoryUpdate{Content: &edited})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteHistoryIsSoft(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seed(t, s, "product", "desk lamp", "Bright.", time.Now())
	seed(t, s, "product", "desk chair", "Comfy.", time.Now())

	require.NoError(t, s.DeleteHistory(ctx, id))

	_, err := s.GetHistory(ctx, id)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, s.DeleteHistory(ctx, id), database.ErrNotFound)

	items, page, err := s.ListHistory(ctx, database.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, page.Total)

	var n int
	n, err = s.db.NewSelect().Model((*models.ContentHistory)(nil)).WhereAllWithDeleted().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHistoryStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	seed(t, s, "blog", "a", "x", now)
	seed(t, s, "blog", "b", "x", now)
	gone := seed(t, s, "social", "c", "x", now)
	seed(t, s, "product", "d", "x", now)
	require.NoError(t, s.DeleteHistory(ctx, gone))

	stats, err := s.HistoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.HistoryStats{Total: 3, ByKind: map[string]int{"blog": 2, "product": 1}}, stats)
}

func TestNormalizeFilter(t *testing.T) {
	f := database.HistoryFilter{Page: -1, PerPage: 1000}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, database.MaxPerPage, f.PerPage)

	f = database.HistoryFilter{}.Normalize()
	assert.Equal(t, database.DefaultPerPage, f.PerPage)
}
