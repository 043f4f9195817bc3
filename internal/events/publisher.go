package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"match-highlights/internal/brokers"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
)

// Publisher sends validated match events toward the ingestion pipeline.
type Publisher interface {
	PublishMatchEvent(ctx context.Context, event *models.MatchEvent) error
}

// BrokerPublisher serializes match events and hands them to a broker
// producer, keyed by matchId so each match keeps publish order.
type BrokerPublisher struct {
	producer brokers.Producer
	topic    string
	logger   logging.Logger
}

func NewBrokerPublisher(producer brokers.Producer, topic string, logger logging.Logger) *BrokerPublisher {
	return &BrokerPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (p *BrokerPublisher) PublishMatchEvent(ctx context.Context, event *models.MatchEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize match event: %w", err)
	}

	message := &brokers.Message{
		Topic:     p.topic,
		Key:       event.MatchID,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}

	if err := p.producer.Publish(ctx, message); err != nil {
		return &brokers.PublishError{
			MatchID: event.MatchID,
			Topic:   p.topic,
			Err:     err,
		}
	}

	p.logger.Debug("Published match event",
		logging.String("match_id", event.MatchID),
		logging.String("event_type", event.EventType),
		logging.String("topic", p.topic))

	return nil
}

// LoggingPublisher is the stand-in used when the bus is disabled: it logs
// the event and reports success. Useful for local development without a
// running Kafka cluster.
type LoggingPublisher struct {
	logger logging.Logger
}

func NewLoggingPublisher(logger logging.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) PublishMatchEvent(_ context.Context, event *models.MatchEvent) error {
	p.logger.Info("Event publishing disabled, logging instead",
		logging.String("match_id", event.MatchID),
		logging.String("event_type", event.EventType),
		logging.String("player", event.Player))
	return nil
}
