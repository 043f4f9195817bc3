// Package enrich turns raw highlight rows into presentable ones, either
// locally with a deterministic template or by calling a remote service.
package enrich

import (
	"context"

	"match-highlights/internal/models"
)

// Result is what an enricher hands back to the worker. Failure is a value,
// not an error: the worker maps Success=false to the Failed status and
// keeps going.
type Result struct {
	Success       bool   `json:"success"`
	Title         string `json:"title,omitempty"`
	Summary       string `json:"summary,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}

type Enricher interface {
	Enrich(ctx context.Context, highlight *models.Highlight) Result
}
