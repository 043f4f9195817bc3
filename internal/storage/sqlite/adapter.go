package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

// Adapter is the SQLite-backed highlight store. Unlike the PostgreSQL
// adapter it provisions its own schema, which keeps local development and
// tests pointing at ":memory:" self-contained.
type Adapter struct {
	db     *sql.DB
	config *Config
}

func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite config: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	adapter := &Adapter{
		db:     db,
		config: config,
	}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return adapter, nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Health() error {
	return a.db.Ping()
}

func (a *Adapter) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS highlights (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			event_type TEXT NOT NULL,
			team TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			title TEXT,
			summary TEXT,
			thumbnail_url TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_match_id ON highlights (match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_status_created ON highlights (status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_occurred_at ON highlights (occurred_at DESC)`,
	}

	for _, query := range queries {
		if _, err := a.db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const highlightColumns = `id, match_id, occurred_at, event_type, team, player, description,
			  status, title, summary, thumbnail_url, created_at, updated_at`

func (a *Adapter) Insert(ctx context.Context, h *models.Highlight) error {
	query := `INSERT INTO highlights (` + highlightColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := a.db.ExecContext(ctx, query,
		h.ID, h.MatchID, h.OccurredAt, h.EventType, h.Team, h.Player, h.Description,
		h.Status, nullString(h.Title), nullString(h.Summary), nullString(h.ThumbnailURL),
		h.CreatedAt, nullTime(h.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert highlight: %w", err)
	}

	return nil
}

func (a *Adapter) GetByID(ctx context.Context, id string) (*models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights WHERE id = ?`

	h, err := scanHighlight(a.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get highlight: %w", err)
	}

	return h, nil
}

func (a *Adapter) List(ctx context.Context, filters storage.ListFilters) ([]*models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights WHERE 1=1`
	args := []interface{}{}

	if filters.MatchID != "" {
		query += " AND match_id = ?"
		args = append(args, filters.MatchID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY occurred_at DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}
	if filters.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filters.Offset)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	defer rows.Close()

	return collectHighlights(rows)
}

func (a *Adapter) ListPendingOldest(ctx context.Context, limit int) ([]*models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights
			  WHERE status = ? ORDER BY created_at ASC LIMIT ?`

	rows, err := a.db.QueryContext(ctx, query, models.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending highlights: %w", err)
	}
	defer rows.Close()

	return collectHighlights(rows)
}

func (a *Adapter) UpdateBatch(ctx context.Context, highlights []*models.Highlight) error {
	if len(highlights) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `UPDATE highlights SET status = ?, title = ?, summary = ?,
			  thumbnail_url = ?, updated_at = ? WHERE id = ?`

	for _, h := range highlights {
		if _, err := tx.ExecContext(ctx, query,
			h.Status, nullString(h.Title), nullString(h.Summary),
			nullString(h.ThumbnailURL), nullTime(h.UpdatedAt), h.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update highlight %s: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit highlight batch: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHighlight(row rowScanner) (*models.Highlight, error) {
	h := &models.Highlight{}
	var title, summary, thumbnail sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(&h.ID, &h.MatchID, &h.OccurredAt, &h.EventType, &h.Team,
		&h.Player, &h.Description, &h.Status, &title, &summary, &thumbnail,
		&h.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	h.Title = title.String
	h.Summary = summary.String
	h.ThumbnailURL = thumbnail.String
	if updatedAt.Valid {
		t := updatedAt.Time
		h.UpdatedAt = &t
	}

	return h, nil
}

func collectHighlights(rows *sql.Rows) ([]*models.Highlight, error) {
	var highlights []*models.Highlight
	for rows.Next() {
		h, err := scanHighlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read highlight rows: %w", err)
	}
	return highlights, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
