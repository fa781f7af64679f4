package commands

import "context"

type ExpireIdleFlowsCommandHandler struct {
	flows IdleFlowExpirer
}

func NewExpireIdleFlowsCommandHandler(flows IdleFlowExpirer) ExpireIdleFlowsCommandHandler {
	return ExpireIdleFlowsCommandHandler{
		flows: flows,
	}
}

// Handle returns how many flows were expired.
func (h ExpireIdleFlowsCommandHandler) Handle(_ context.Context, cmd ExpireIdleFlowsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.flows.ExpireIdle(cmd.Now(), cmd.TTL()), nil
}
