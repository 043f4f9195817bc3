// Package cache provides the read-side cache in front of the highlight
// store. The store stays authoritative: every cache failure degrades to a
// miss and is logged, never surfaced to callers.
package cache

import (
	"context"
	"fmt"

	"match-highlights/internal/models"
)

// HighlightCache is a cache-aside accelerator for point lookups. Entries
// are the wire DTOs, so a cache hit serves exactly the payload a store
// read would have produced.
type HighlightCache interface {
	// Get returns the cached DTO and true on a hit. Errors and
	// undecodable entries count as misses.
	Get(ctx context.Context, id string) (*models.HighlightDTO, bool)
	// Set stores the DTO best-effort.
	Set(ctx context.Context, dto *models.HighlightDTO)
	// Delete removes the entry best-effort.
	Delete(ctx context.Context, id string)
	Health() error
	Close() error
}

// Key builds the cache key for a highlight id.
func Key(id string) string {
	return fmt.Sprintf("highlight:%s", id)
}
