package commands

import "context"

// ResetFlowCommandHandler releases the session's transient resources and
// forgets its idempotency keys. The order desk is not contacted, so an order
// left partially confirmed stays that way on the desk.
type ResetFlowCommandHandler struct {
	flows FlowRegistry
}

func NewResetFlowCommandHandler(flows FlowRegistry) ResetFlowCommandHandler {
	return ResetFlowCommandHandler{
		flows: flows,
	}
}

func (h ResetFlowCommandHandler) Handle(_ context.Context, cmd ResetFlowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.flows.Remove(cmd.Session())
}
