package commands

import (
	"errors"

	"parcel/internal/pkg/guard"
)

var (
	ErrResetFlowCommandIsNotConstructed = errors.New(
		"ResetFlowCommand must be created via NewResetFlowCommand constructor",
	)
)

// ResetFlowCommand abandons a session's booking in progress.
type ResetFlowCommand struct { //nolint:recvcheck //using for validation
	session string

	guard guard.ConstructorGuard
}

func NewResetFlowCommand(session string) (ResetFlowCommand, error) {
	if session == "" {
		return ResetFlowCommand{}, ErrSessionIsRequired
	}

	return ResetFlowCommand{
		session: session,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResetFlowCommand) Validate() error {
	return c.guard.Validate(ErrResetFlowCommandIsNotConstructed)
}

func (c ResetFlowCommand) Session() string {
	return c.session
}
