package queries

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/guard"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
)

// GetShipmentQuery reads one shipment for the back office.
//
// Example:
//
//	query, err := NewGetShipmentQuery(id)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetShipmentQueryHandler(db).Handle(ctx, query)
type GetShipmentQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(id kernel.UUID) (GetShipmentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentQuery) ID() kernel.UUID { return q.id }

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// GetShipmentQueryResponse is the back-office view of a shipment. Fees that
// have not been computed are unknown, not zero.
type GetShipmentQueryResponse struct {
	ID              kernel.UUID
	OrderID         string
	TrackingCode    string
	Status          shipment.Status
	ServiceType     shipment.ServiceType
	SenderName      string
	ReceiverName    string
	EstimatedFee    kernel.Fee
	ActualFee       kernel.Fee
	PriceDifference kernel.Fee
	Deviations      shipment.Deviations
	Problems        []string
	Note            string
	AvailableSteps  []shipment.Step
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
