package ports

import (
	"context"

	"parcel/internal/core/domain/model/shipment"
)

// CreatedOrder is the durable booking returned by create.
type CreatedOrder struct {
	OrderID      string
	TrackingCode string
}

// OrderDesk is the remote booking authority. Every call carries the
// idempotency key of the submission attempt; repeating a call with the same
// key must not create a second order.
//
// Failures are *errs.RemoteValidationError when the desk rejected the input
// and *errs.RemoteOperationError otherwise.
type OrderDesk interface {
	// Quote prices the intake. It has no durable effect.
	Quote(ctx context.Context, key string, intake shipment.Intake) (shipment.PricingBreakdown, error)

	// Create books the order. Idempotent by key.
	Create(ctx context.Context, key string, intake shipment.Intake) (CreatedOrder, error)

	// ConfirmOrder finalises a created but unconfirmed order.
	ConfirmOrder(ctx context.Context, key string, orderID string) error
}

// StatusUpdater pushes a planned status change to the order desk. The local
// aggregate is only mutated after it succeeds.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, payload shipment.Payload) error
}
