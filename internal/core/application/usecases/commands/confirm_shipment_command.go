package commands

import (
	"errors"

	"parcel/internal/pkg/guard"
)

var (
	ErrConfirmShipmentCommandIsNotConstructed = errors.New(
		"ConfirmShipmentCommand must be created via NewConfirmShipmentCommand constructor",
	)
)

// ConfirmShipmentCommand books the quoted order of a session. With retry set
// the last failed attempt is repeated under its original idempotency key
// instead of starting a new one.
type ConfirmShipmentCommand struct { //nolint:recvcheck //using for validation
	session string
	retry   bool

	guard guard.ConstructorGuard
}

func NewConfirmShipmentCommand(session string) (ConfirmShipmentCommand, error) {
	return newConfirmShipmentCommand(session, false)
}

func NewRetryConfirmShipmentCommand(session string) (ConfirmShipmentCommand, error) {
	return newConfirmShipmentCommand(session, true)
}

func newConfirmShipmentCommand(session string, retry bool) (ConfirmShipmentCommand, error) {
	if session == "" {
		return ConfirmShipmentCommand{}, ErrSessionIsRequired
	}

	return ConfirmShipmentCommand{
		session: session,
		retry:   retry,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmShipmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShipmentCommandIsNotConstructed)
}

func (c ConfirmShipmentCommand) Session() string { return c.session }
func (c ConfirmShipmentCommand) IsRetry() bool   { return c.retry }
