package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/core/ports"
	"github.com/segmentio/kafka-go"
)

// Publisher delivers domain events to a Kafka topic. Messages are JSON encoded
// with the event name as key so consumers can partition by mutation kind.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Publish writes one event to the topic.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.Name, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Name),
		Value: data,
	})
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
