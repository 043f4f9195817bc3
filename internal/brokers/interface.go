package brokers

import (
	"context"
	"fmt"
	"time"
)

// Message is an outbound record. Key selects the partition so events for
// the same match stay ordered.
type Message struct {
	Topic     string
	Key       string
	Headers   map[string]string
	Body      []byte
	Timestamp time.Time
}

// IncomingMessage is a record fetched from a topic.
type IncomingMessage struct {
	Topic     string
	Key       string
	Headers   map[string]string
	Body      []byte
	Timestamp time.Time
}

type Producer interface {
	Publish(ctx context.Context, message *Message) error
	Health() error
	Close() error
}

// Consumer is pull-based: callers drive the fetch loop and decide how to
// react to transport errors. Offsets are committed automatically, so a
// fetched message is handled at most once by this process.
type Consumer interface {
	Fetch(ctx context.Context) (*IncomingMessage, error)
	Close() error
}

// PublishError reports a failed publish with enough context to trace the
// affected match without parsing log lines.
type PublishError struct {
	MatchID string
	Topic   string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish event for match %s to topic %s: %v", e.MatchID, e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
