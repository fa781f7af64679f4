package commands

import (
	"errors"
	"maps"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/guard"
)

var (
	ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
		"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
	)
)

// StepData is what staff submit with a step. Measurement is required for
// CHECK_ITEM, CheckIn for CHECK_IN_ORIGIN; Payment is optional for
// COLLECT_PAYMENT. Other steps use only Flags and Note.
type StepData struct {
	Flags       map[string]bool
	Note        string
	Measurement *shipment.Measurement
	Payment     *shipment.Payment
	CheckIn     *shipment.CheckIn
}

// AdvanceShipmentCommand requests one status transition of a stored shipment.
//
// Example:
//
//	cmd, err := NewAdvanceShipmentCommand(id, shipment.CheckPrice, StepData{
//	    Flags: map[string]bool{shipment.ItemCustomerInformed: true, shipment.ItemCustomerAcceptedCharge: true},
//	})
//	s, err := handler.Handle(ctx, cmd)
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	step       shipment.Step
	data       StepData

	guard guard.ConstructorGuard
}

func NewAdvanceShipmentCommand(shipmentID kernel.UUID, step shipment.Step, data StepData) (AdvanceShipmentCommand, error) {
	cmd := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStep(step),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	data.Flags = maps.Clone(data.Flags)
	cmd.data = data

	return cmd, nil
}

func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AdvanceShipmentCommand) Step() shipment.Step     { return c.step }
func (c AdvanceShipmentCommand) Data() StepData          { return c.data }

func (c *AdvanceShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *AdvanceShipmentCommand) setStep(step shipment.Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	c.step = step
	return nil
}
