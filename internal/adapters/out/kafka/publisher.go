// Package kafka relays outbox messages to Kafka.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// Header names attached to every published message.
const (
	HeaderMessageID  = "message-id"
	HeaderOccurredAt = "occurred-at"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers      []string
	TopicPrefix  string
	BatchTimeout time.Duration
}

// Publisher writes outbox messages to the topic named by each message,
// optionally prefixed, keyed so that one shipment stays on one partition.
type Publisher struct {
	writer      messageWriter
	topicPrefix string
	logger      *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(writer, cfg.TopicPrefix, logger), nil
}

func NewPublisherWithWriter(writer messageWriter, topicPrefix string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer:      writer,
		topicPrefix: topicPrefix,
		logger:      logger.With("component", "kafka_publisher"),
	}
}

// Publish writes all messages in one batch. Either the whole batch is
// acknowledged or an error is returned and the caller retries it.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Topic: p.topic(m.Topic),
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderMessageID, Value: []byte(m.ID.String())},
				{Key: HeaderOccurredAt, Value: []byte(m.OccurredAt.UTC().Format(time.RFC3339Nano))},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish messages", "count", len(batch), "error", err)
		return fmt.Errorf("publish %d messages: %w", len(batch), err)
	}

	p.logger.DebugContext(ctx, "Published messages", "count", len(batch))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) topic(name string) string {
	if p.topicPrefix == "" {
		return name
	}
	return strings.TrimSuffix(p.topicPrefix, ".") + "." + name
}
