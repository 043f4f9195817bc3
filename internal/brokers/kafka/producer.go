package kafka

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"match-highlights/internal/brokers"
)

// Producer publishes records to Kafka and waits for broker acknowledgement
// before returning, so callers see delivery failures synchronously.
type Producer struct {
	config   *Config
	producer *kafka.Producer
}

func NewProducer(config *Config) (*Producer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Kafka config: %w", err)
	}

	kafkaConfig := kafka.ConfigMap{}
	for key, value := range config.configMap("") {
		kafkaConfig[key] = value
	}

	producer, err := kafka.NewProducer(&kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		config:   config,
		producer: producer,
	}, nil
}

func (p *Producer) Publish(ctx context.Context, message *brokers.Message) error {
	if message.Topic == "" {
		return fmt.Errorf("message topic is required")
	}

	topic := message.Topic
	kafkaMsg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:       []byte(message.Key),
		Value:     message.Body,
		Timestamp: message.Timestamp,
	}

	if len(message.Headers) > 0 {
		headers := make([]kafka.Header, 0, len(message.Headers))
		for key, value := range message.Headers {
			headers = append(headers, kafka.Header{
				Key:   key,
				Value: []byte(value),
			})
		}
		kafkaMsg.Headers = headers
	}

	deliveryChan := make(chan kafka.Event, 1)
	if err := p.producer.Produce(kafkaMsg, deliveryChan); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case e := <-deliveryChan:
		m := e.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) Health() error {
	if p.producer == nil {
		return fmt.Errorf("Kafka producer not connected")
	}

	// GetMetadata round-trips to the cluster, which is the closest thing
	// librdkafka offers to a ping.
	_, err := p.producer.GetMetadata(nil, false, int(p.config.Timeout.Milliseconds()))
	if err != nil {
		return fmt.Errorf("Kafka health check failed: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	if p.producer != nil {
		p.producer.Flush(int(p.config.Timeout.Milliseconds()))
		p.producer.Close()
	}
	return nil
}
