package commands

import (
	"context"

	"parcel/internal/core/application/orderflow"
)

// SwitchServiceTypeCommandHandler migrates the session's items and drops any
// quote, which no longer matches the intake.
type SwitchServiceTypeCommandHandler struct {
	flows FlowRegistry
}

func NewSwitchServiceTypeCommandHandler(flows FlowRegistry) SwitchServiceTypeCommandHandler {
	return SwitchServiceTypeCommandHandler{
		flows: flows,
	}
}

func (h SwitchServiceTypeCommandHandler) Handle(_ context.Context, cmd SwitchServiceTypeCommand) (orderflow.State, error) {
	if err := cmd.Validate(); err != nil {
		return orderflow.State{}, err
	}

	flow := h.flows.Get(cmd.Session())
	if err := flow.SwitchServiceType(cmd.ServiceType()); err != nil {
		return orderflow.State{}, err
	}

	return flow.State(), nil
}
