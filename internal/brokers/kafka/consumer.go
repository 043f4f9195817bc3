package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"match-highlights/internal/brokers"
)

// readPollInterval bounds how long a single ReadMessage call blocks, which
// keeps Fetch responsive to context cancellation.
const readPollInterval = time.Second

// Consumer fetches records one at a time. Offsets auto-commit in the
// background, matching the at-least-once delivery the pipeline expects.
type Consumer struct {
	config   *Config
	consumer *kafka.Consumer
}

func NewConsumer(config *Config, topic string) (*Consumer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Kafka config: %w", err)
	}

	kafkaConfig := kafka.ConfigMap{
		"group.id":           config.GroupID,
		"session.timeout.ms": 6000,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": true,
	}
	for key, value := range config.configMap("-consumer") {
		kafkaConfig[key] = value
	}

	consumer, err := kafka.NewConsumer(&kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}

	return &Consumer{
		config:   config,
		consumer: consumer,
	}, nil
}

// Fetch blocks until a record arrives or ctx is cancelled. Poll timeouts
// are retried internally rather than surfaced as transport failures.
func (c *Consumer) Fetch(ctx context.Context) (*brokers.IncomingMessage, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := c.consumer.ReadMessage(readPollInterval)
		if err != nil {
			if kerr, ok := err.(kafka.Error); ok && kerr.Code() == kafka.ErrTimedOut {
				continue
			}
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		incoming := &brokers.IncomingMessage{
			Key:       string(msg.Key),
			Body:      msg.Value,
			Timestamp: msg.Timestamp,
		}
		if msg.TopicPartition.Topic != nil {
			incoming.Topic = *msg.TopicPartition.Topic
		}
		if len(msg.Headers) > 0 {
			incoming.Headers = make(map[string]string, len(msg.Headers))
			for _, h := range msg.Headers {
				incoming.Headers[h.Key] = string(h.Value)
			}
		}

		return incoming, nil
	}
}

func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}
