package commands

import (
	"context"
	"log/slog"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// AdvanceShipmentCommandHandler moves a shipment one step along its lifecycle.
//
// The step is planned against the stored status, pushed to the order desk
// with updateStatus, and only then applied and saved. If the desk rejects the
// update nothing is written. One call per shipment runs at a time; a
// concurrent one gets errs.ErrOperationInFlight.
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	inFlight   ports.InFlightGuard
	updater    ports.StatusUpdater
	reconciler services.PriceReconciler
	logger     *slog.Logger
}

func NewAdvanceShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	inFlight ports.InFlightGuard,
	updater ports.StatusUpdater,
	logger *slog.Logger,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		inFlight:   inFlight,
		updater:    updater,
		reconciler: services.NewPriceReconciler(),
		logger:     logger.With("component", "AdvanceShipmentCommandHandler"),
	}
}

func (h AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	release, err := h.inFlight.Acquire(ctx, "shipment:"+cmd.ShipmentID().String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	in, err := h.stepInput(s, cmd)
	if err != nil {
		return nil, err
	}

	decision, err := s.PlanStep(cmd.Step(), in)
	if err != nil {
		return nil, err
	}

	if err = h.updater.UpdateStatus(ctx, s.OrderID(), decision.Payload()); err != nil {
		h.logger.WarnContext(ctx, "Order desk refused status update",
			"shipment_id", s.ID().String(), "step", cmd.Step().String(), "to", decision.To().String(), "error", err)
		return nil, err
	}

	if err = s.Apply(decision); err != nil {
		// The desk already holds the new status; the next attempt replays it.
		h.logger.ErrorContext(ctx, "Status pushed but not applied",
			"shipment_id", s.ID().String(), "step", cmd.Step().String(), "error", err)
		return nil, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Shipment advanced",
		"shipment_id", s.ID().String(), "step", cmd.Step().String(),
		"from", decision.From().String(), "to", decision.To().String())
	return s, nil
}

func (h AdvanceShipmentCommandHandler) stepInput(s *shipment.Shipment, cmd AdvanceShipmentCommand) (shipment.StepInput, error) {
	data := cmd.Data()
	in := shipment.StepInput{
		Flags:   data.Flags,
		Note:    data.Note,
		Payment: data.Payment,
		CheckIn: data.CheckIn,
	}

	if cmd.Step() != shipment.CheckItem {
		return in, nil
	}
	if data.Measurement == nil {
		return shipment.StepInput{}, errs.NewValueIsRequiredError("measurement")
	}

	r, err := h.reconciler.ReconcileShipment(s, *data.Measurement)
	if err != nil {
		return shipment.StepInput{}, err
	}
	in.Reconciliation = &r
	return in, nil
}
