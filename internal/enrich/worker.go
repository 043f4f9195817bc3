package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

// Worker polls the store for pending highlights and runs them through the
// configured enricher, oldest first. Faults stay local: a panicking or
// failing enrichment marks that one highlight Failed, an errored cycle is
// logged and retried on the next tick. Only cancellation stops the loop.
type Worker struct {
	store        storage.Store
	enricher     Enricher
	pollInterval time.Duration
	batchSize    int
	logger       logging.Logger
}

func NewWorker(store storage.Store, enricher Enricher, pollInterval time.Duration, batchSize int, logger logging.Logger) *Worker {
	return &Worker{
		store:        store,
		enricher:     enricher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Enrichment worker starting",
		logging.Duration("poll_interval", w.pollInterval),
		logging.Int("batch_size", w.batchSize))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			w.logger.Error("Enrichment cycle failed", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Enrichment worker stopping")
			return
		case <-ticker.C:
		}
	}

	w.logger.Info("Enrichment worker stopping")
}

// RunOnce performs a single cycle: read a batch of pending highlights,
// enrich each, write the whole batch back.
func (w *Worker) RunOnce(ctx context.Context) error {
	pending, err := w.store.ListPendingOldest(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("failed to load pending highlights: %w", err)
	}

	if len(pending) == 0 {
		w.logger.Debug("No pending highlights in this cycle")
		return nil
	}

	w.logger.Info("Processing pending highlights", logging.Int("count", len(pending)))

	for _, highlight := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.enrichOne(ctx, highlight)
	}

	if err := w.store.UpdateBatch(ctx, pending); err != nil {
		return fmt.Errorf("failed to persist enriched batch: %w", err)
	}

	return nil
}

// enrichOne applies the enricher to a single highlight, mutating it in
// place. A panic inside the enricher is contained here.
func (w *Worker) enrichOne(ctx context.Context, highlight *models.Highlight) {
	result := w.safeEnrich(ctx, highlight)
	now := time.Now().UTC()
	highlight.UpdatedAt = &now

	if !result.Success {
		highlight.Status = models.StatusFailed
		reason := result.FailureReason
		if reason == "" {
			reason = "no reason provided"
		}
		w.logger.Warn("Failed to enrich highlight",
			logging.String("highlight_id", highlight.ID),
			logging.String("reason", reason))
		return
	}

	highlight.Status = models.StatusReady

	// Only overwrite fields the enricher actually filled in.
	if strings.TrimSpace(result.Title) != "" {
		highlight.Title = result.Title
	}
	if strings.TrimSpace(result.Summary) != "" {
		highlight.Summary = result.Summary
	}
	if strings.TrimSpace(result.ThumbnailURL) != "" {
		highlight.ThumbnailURL = result.ThumbnailURL
	}

	w.logger.Info("Enriched highlight",
		logging.String("highlight_id", highlight.ID),
		logging.String("title", highlight.Title))
}

func (w *Worker) safeEnrich(ctx context.Context, highlight *models.Highlight) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Enricher panicked", fmt.Errorf("panic: %v", r),
				logging.String("highlight_id", highlight.ID))
			result = Result{
				Success:       false,
				FailureReason: fmt.Sprintf("Enricher panicked: %v", r),
			}
		}
	}()

	return w.enricher.Enrich(ctx, highlight)
}
