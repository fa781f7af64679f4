// Package ports defines the contracts between the shipment core and its
// infrastructure: persistence, the remote order desk, event publishing and
// cross-instance locking.
package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment with its items.
	// A second shipment for the same order id is rejected.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the status and recorded stage data of an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByOrderID retrieves a shipment by the order desk's order id.
	GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error)
}
