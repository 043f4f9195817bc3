// Package handlers implements the HTTP surface: event ingress, highlight
// reads, and health.
package handlers

import (
	"encoding/json"
	"net/http"

	"match-highlights/internal/cache"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/config"
	"match-highlights/internal/events"
	"match-highlights/internal/storage"
)

const serviceName = "match-highlights"

type Handlers struct {
	store     storage.Store
	cache     cache.HighlightCache
	publisher events.Publisher
	producer  healthChecker
	config    *config.Config
	logger    logging.Logger
}

// healthChecker is the slice of the producer the health endpoint needs.
type healthChecker interface {
	Health() error
}

func New(store storage.Store, highlightCache cache.HighlightCache, publisher events.Publisher, producer healthChecker, cfg *config.Config, logger logging.Logger) *Handlers {
	return &Handlers{
		store:     store,
		cache:     highlightCache,
		publisher: publisher,
		producer:  producer,
		config:    cfg,
		logger:    logger,
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", err)
	}
}
