package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"

	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/database/models"
)

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type BunStore struct {
	db *bun.DB
}

// OpenSQLite opens (or creates) the SQLite database at path through
// sqliteshim, which picks whichever SQLite driver the build provides.
func OpenSQLite(ctx context.Context, path string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases intact and avoids SQLITE_BUSY.
	sqldb.SetMaxOpenConns(1)

	if _, err := sqldb.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	store, err := NewBunStore(ctx, sqldb, sqlitedialect.New())
	if err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return store, nil
}

func NewBunStore(ctx context.Context, db *sql.DB, dialect schema.Dialect) (*BunStore, error) {
	bunDB := bun.NewDB(db, dialect)

	store := &BunStore{db: bunDB}

	// Create tables if they don't exist
	if _, err := bunDB.NewCreateTable().Model((*models.ContentHistory)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create content_history table: %w", err)
	}
	if _, err := bunDB.NewCreateIndex().Model((*models.ContentHistory)(nil)).
		Index("idx_content_history_kind_created").
		Column("kind", "created_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create content_history index: %w", err)
	}

	return store, nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

// HistoryRepository Implementation
func (s *BunStore) SaveHistory(ctx context.Context, h *models.ContentHistory) (string, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(h).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save history: %w", err)
	}
	return h.ID, nil
}

func (s *BunStore) GetHistory(ctx context.Context, id string) (*models.ContentHistory, error) {
	h := new(models.ContentHistory)
	if err := s.db.NewSelect().Model(h).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListHistory returns the newest entries first. Search matches topic or content.
func (s *BunStore) ListHistory(ctx context.Context, f database.HistoryFilter) ([]*models.ContentHistory, database.Pagination, error) {
	f = f.Normalize()

	var items []*models.ContentHistory
	q := s.db.NewSelect().Model(&items)
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Search != "" {
		like := "%" + likeEscaper.Replace(f.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("topic LIKE ? ESCAPE '!'", like).WhereOr("content LIKE ? ESCAPE '!'", like)
		})
	}

	total, err := q.Order("created_at DESC", "id DESC").
		Limit(f.PerPage).
		Offset((f.Page - 1) * f.PerPage).
		ScanAndCount(ctx)
	if err != nil {
		return nil, database.Pagination{}, fmt.Errorf("failed to list history: %w", err)
	}
	if items == nil {
		items = []*models.ContentHistory{}
	}
	return items, database.NewPagination(f.Page, f.PerPage, total), nil
}

func (s *BunStore) UpdateHistory(ctx context.Context, id string, u database.HistoryUpdate) (*models.ContentHistory, error) {
	h, err := s.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	q := s.db.NewUpdate().Model(h).WherePK()
	if u.Topic != nil {
		h.Topic = *u.Topic
		q = q.Column("topic")
	}
	if u.Content != nil {
		h.Content = *u.Content
		q = q.Column("content")
	}
	if u.Parameters != nil {
		h.Parameters = u.Parameters
		q = q.Column("parameters")
	}
	h.UpdatedAt = time.Now().UTC()
	q = q.Column("updated_at")

	if _, err := q.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to update history: %w", err)
	}
	return h, nil
}

// DeleteHistory soft-deletes an entry; it stays in the table but is hidden.
func (s *BunStore) DeleteHistory(ctx context.Context, id string) error {
	h, err := s.GetHistory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model(h).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

func (s *BunStore) HistoryStats(ctx context.Context) (database.HistoryStats, error) {
	var rows []struct {
		Kind  string `bun:"kind"`
		Count int    `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*models.ContentHistory)(nil)).
		Column("kind").
		ColumnExpr("COUNT(*) AS count").
		Group("kind").
		Scan(ctx, &rows)
	if err != nil {
		return database.HistoryStats{}, fmt.Errorf("failed to count history: %w", err)
	}

	stats := database.HistoryStats{ByKind: make(map[string]int, len(rows))}
	for _, r := range rows {
		stats.ByKind[r.Kind] = r.Count
		stats.Total += r.Count
	}
	return stats, nil
}
