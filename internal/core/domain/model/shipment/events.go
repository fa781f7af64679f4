package shipment

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the topic-level name of StatusChanged.
const StatusChangedEventName = "shipment.status_changed"

// StatusChanged is raised on creation (From is Unknown) and on every applied
// step. Events are collected on the aggregate and drained by the unit of work.
type StatusChanged struct {
	EventID      kernel.UUID
	ShipmentID   kernel.UUID
	OrderID      string
	TrackingCode string
	From         Status
	To           Status
	Step         Step
	Branch       Branch
	OccurredAt   time.Time
}

func (e StatusChanged) Name() string {
	return StatusChangedEventName
}
