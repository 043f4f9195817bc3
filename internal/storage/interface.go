// Package storage defines the highlight store abstraction and its adapters.
// The store is the authoritative source of truth for highlight records; the
// read cache in front of it is a pure accelerator.
package storage

import (
	"context"
	"errors"

	"match-highlights/internal/models"
)

// ErrNotFound is returned by GetByID when no highlight exists for the id.
var ErrNotFound = errors.New("highlight not found")

// ListFilters narrows and pages a highlight listing. Zero values mean
// "no filter". Results are always ordered by occurred_at descending.
type ListFilters struct {
	MatchID string
	Status  string
	Limit   int
	Offset  int
}

// Store is the persistence contract for highlight records.
//
// The ingestion consumer inserts, the enrichment worker scans pending rows
// and applies batched updates, and the read API performs point and list
// reads. Implementations must allow inserts and scan+update to run
// concurrently without lost updates.
type Store interface {
	Close() error
	Health() error

	// Insert persists a new highlight row.
	Insert(ctx context.Context, h *models.Highlight) error

	// GetByID returns a single highlight or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Highlight, error)

	// List returns highlights matching the filters, ordered by occurred_at
	// descending.
	List(ctx context.Context, filters ListFilters) ([]*models.Highlight, error)

	// ListPendingOldest returns up to limit pending highlights ordered by
	// created_at ascending, so the oldest work drains first.
	ListPendingOldest(ctx context.Context, limit int) ([]*models.Highlight, error)

	// UpdateBatch persists status and enrichment mutations for a worker
	// cycle's batch inside a single transaction.
	UpdateBatch(ctx context.Context, highlights []*models.Highlight) error
}
