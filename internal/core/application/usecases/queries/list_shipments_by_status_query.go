package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var (
	ErrListShipmentsByStatusQueryIsNotConstructed = errors.New(
		"ListShipmentsByStatusQuery must be created via NewListShipmentsByStatusQuery constructor",
	)
)

// ListShipmentsByStatusQuery lists the shipments sitting in one status, most
// recently changed first. A zero limit means DefaultListLimit.
type ListShipmentsByStatusQuery struct {
	status shipment.Status
	limit  int

	guard guard.ConstructorGuard
}

func NewListShipmentsByStatusQuery(status shipment.Status, limit int) (ListShipmentsByStatusQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	if err := errors.Join(
		status.Validate(),
		validateLimit(limit),
	); err != nil {
		return ListShipmentsByStatusQuery{}, err
	}

	return ListShipmentsByStatusQuery{
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListShipmentsByStatusQuery) Status() shipment.Status { return q.status }
func (q ListShipmentsByStatusQuery) Limit() int              { return q.limit }

func (q ListShipmentsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsByStatusQueryIsNotConstructed)
}

// ShipmentSummary is one line of a shipment listing.
type ShipmentSummary struct {
	ID           kernel.UUID
	OrderID      string
	TrackingCode string
	Status       shipment.Status
	ReceiverName string
	UpdatedAt    time.Time
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxListLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return nil
}
