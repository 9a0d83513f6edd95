package events

import (
	"context"
	"fmt"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

const (
	TypeProductPublished = "product.published"
	TypeSyncCompleted    = "sync.completed"
)

type Event struct {
	Type      string                 `json:"type"`
	ProductID string                 `json:"product_id,omitempty"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no
// brokers are configured.
func NewPublisher(cfg config.KafkaConfig, logger *logger.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, sync events are disabled")
		return Nop{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	p.logger.Debug("Published %s event", event.Type)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(event Event) (kafka.Message, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	key := event.ProductID
	if key == "" {
		key = event.Type
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error { return nil }
