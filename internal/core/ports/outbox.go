package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event serialised for publishing.
type OutboxMessage struct {
	ID         kernel.UUID
	Topic      string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository stores events in the same transaction as the aggregate
// change that raised them. A relay later publishes and marks them.
type OutboxRepository interface {
	// Add stores messages for later publishing.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// ListUnpublished returns at most limit messages in occurrence order.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps messages as delivered to the broker.
	MarkPublished(ctx context.Context, at time.Time, ids ...kernel.UUID) error
}

// EventPublisher delivers outbox messages to the broker. Delivery is at
// least once; consumers key on the message id.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
