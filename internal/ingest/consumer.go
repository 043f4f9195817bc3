// Package ingest consumes match events from the bus and turns scoring
// events into pending highlight rows.
package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"match-highlights/internal/brokers"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
	"match-highlights/internal/storage"
)

// goalEventType is the only event type that produces a highlight, matched
// case-insensitively.
const goalEventType = "goal"

// Consumer runs the ingestion loop. Per-message problems (empty body, bad
// JSON, store failure) are logged and skipped; transport errors back off
// and retry. Delivery is at least once and there is no dedup key, so a
// redelivered message creates a second row.
type Consumer struct {
	consumer brokers.Consumer
	store    storage.Store
	backoff  time.Duration
	logger   logging.Logger
}

func NewConsumer(consumer brokers.Consumer, store storage.Store, backoff time.Duration, logger logging.Logger) *Consumer {
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Consumer{
		consumer: consumer,
		store:    store,
		backoff:  backoff,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("Event ingestion consumer starting")

	for {
		message, err := c.consumer.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Event ingestion consumer stopping")
				return
			}

			c.logger.Error("Failed to fetch message, backing off", err,
				logging.Duration("backoff", c.backoff))
			select {
			case <-ctx.Done():
				c.logger.Info("Event ingestion consumer stopping")
				return
			case <-time.After(c.backoff):
			}
			continue
		}

		c.handleMessage(ctx, message)
	}
}

func (c *Consumer) handleMessage(ctx context.Context, message *brokers.IncomingMessage) {
	if len(message.Body) == 0 {
		c.logger.Debug("Skipping empty message body")
		return
	}

	var event models.MatchEvent
	if err := json.Unmarshal(message.Body, &event); err != nil {
		c.logger.Warn("Dropping undecodable message",
			logging.String("key", message.Key),
			logging.Err(err))
		return
	}

	if !strings.EqualFold(strings.TrimSpace(event.EventType), goalEventType) {
		c.logger.Debug("Ignoring non-goal event",
			logging.String("match_id", event.MatchID),
			logging.String("event_type", event.EventType))
		return
	}

	highlight := NewHighlightFromEvent(&event)

	if err := c.store.Insert(ctx, highlight); err != nil {
		c.logger.Error("Failed to store highlight", err,
			logging.String("match_id", event.MatchID),
			logging.String("highlight_id", highlight.ID))
		return
	}

	c.logger.Info("Created pending highlight",
		logging.String("highlight_id", highlight.ID),
		logging.String("match_id", event.MatchID),
		logging.String("player", event.Player))
}

// NewHighlightFromEvent copies the event fields into a fresh pending
// highlight row.
func NewHighlightFromEvent(event *models.MatchEvent) *models.Highlight {
	return &models.Highlight{
		ID:          uuid.NewString(),
		MatchID:     event.MatchID,
		OccurredAt:  event.OccurredAt,
		EventType:   event.EventType,
		Team:        event.Team,
		Player:      event.Player,
		Description: event.Description,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
