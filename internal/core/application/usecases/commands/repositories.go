// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Shipment commands follow one pattern: validation, transaction management and
// persistence. Flow commands drive the in-memory quote/confirm orchestrator and
// persist only once the order desk has confirmed an order.
package commands

import (
	"context"
	"time"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ShipmentUoW manages transactions for shipment operations. Events raised
	// by saved shipments are written to the outbox on Commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// OutboxUoW gives the relay the outbox inside one transaction, so listed
	// rows stay locked until they are marked.
	OutboxUoW interface {
		TxManager
		OutboxRepository() ports.OutboxRepository
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// FlowRegistry hands out the per-session quote/confirm flows.
type FlowRegistry interface {
	Get(session string) *orderflow.Flow
	Remove(session string) error
}

// IdleFlowExpirer drops flows nobody has touched for a while.
type IdleFlowExpirer interface {
	ExpireIdle(now time.Time, ttl time.Duration) int
}
