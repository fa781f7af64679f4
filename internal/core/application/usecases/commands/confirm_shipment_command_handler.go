package commands

import (
	"context"
	"errors"
	"log/slog"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"
)

// ConfirmShipmentCommandHandler runs create and confirmOrder for a quoted
// session and then stores the new shipment at ON_THE_WAY_PICKUP.
//
// The shipment is keyed by the desk's order id, so confirming again after a
// crash between the remote confirmation and the commit returns the stored
// shipment instead of adding a second one.
//
// Example:
//
//	cmd, _ := NewConfirmShipmentCommand("desk-7")
//	s, err := handler.Handle(ctx, cmd)
//	var partial *errs.PartialCompletionError
//	if errors.As(err, &partial) {
//	    // order partial.OrderID exists unconfirmed, retry with NewRetryConfirmShipmentCommand
//	}
type ConfirmShipmentCommandHandler struct {
	flows      FlowRegistry
	uowFactory ShipmentUoWFactory
	logger     *slog.Logger
}

func NewConfirmShipmentCommandHandler(
	flows FlowRegistry,
	uowFactory ShipmentUoWFactory,
	logger *slog.Logger,
) ConfirmShipmentCommandHandler {
	return ConfirmShipmentCommandHandler{
		flows:      flows,
		uowFactory: uowFactory,
		logger:     logger.With("component", "ConfirmShipmentCommandHandler"),
	}
}

func (h ConfirmShipmentCommandHandler) Handle(ctx context.Context, cmd ConfirmShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	flow := h.flows.Get(cmd.Session())

	var (
		confirmation orderflow.Confirmation
		err          error
	)
	if cmd.IsRetry() {
		confirmation, err = flow.RetryConfirm(ctx)
	} else {
		confirmation, err = flow.Confirm(ctx)
	}
	if err != nil {
		return nil, err
	}

	s, err := h.store(ctx, confirmation)
	if err != nil {
		h.logger.ErrorContext(ctx, "Confirmed order was not stored",
			"order_id", confirmation.OrderID, "tracking_code", confirmation.TrackingCode, "error", err)
		return nil, err
	}

	return s, nil
}

func (h ConfirmShipmentCommandHandler) store(ctx context.Context, c orderflow.Confirmation) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	existing, err := repo.GetByOrderID(ctx, c.OrderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	s, err := shipment.NewShipment(kernel.NewUUID(), c.OrderID, c.TrackingCode, c.IdempotencyKey, c.Intake, c.Pricing)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Shipment created",
		"shipment_id", s.ID().String(), "order_id", s.OrderID(), "tracking_code", s.TrackingCode())
	return s, nil
}
