package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

// Adapter is the PostgreSQL-backed highlight store. The schema is provisioned
// externally (see schema.sql); the adapter only verifies connectivity.
type Adapter struct {
	db     *sql.DB
	config *Config
}

func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL config: %w", err)
	}

	db, err := sql.Open("pgx", config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Adapter{
		db:     db,
		config: config,
	}, nil
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

const highlightColumns = `id, match_id, occurred_at, event_type, team, player, description,
			  status, title, summary, thumbnail_url, created_at, updated_at`

func (a *Adapter) Insert(ctx context.Context, h *models.Highlight) error {
	query := `INSERT INTO highlights (` + highlightColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

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
	query := `SELECT ` + highlightColumns + ` FROM highlights WHERE id = $1`

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
	argCount := 0

	if filters.MatchID != "" {
		argCount++
		query += fmt.Sprintf(" AND match_id = $%d", argCount)
		args = append(args, filters.MatchID)
	}
	if filters.Status != "" {
		argCount++
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
	}

	query += " ORDER BY occurred_at DESC"

	if filters.Limit > 0 {
		argCount++
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filters.Limit)
	}
	if filters.Offset > 0 {
		argCount++
		query += fmt.Sprintf(" OFFSET $%d", argCount)
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
			  WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

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

	query := `UPDATE highlights SET status = $1, title = $2, summary = $3,
			  thumbnail_url = $4, updated_at = $5 WHERE id = $6`

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
