package commands

import (
	"errors"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/guard"
)

var (
	ErrSwitchServiceTypeCommandIsNotConstructed = errors.New(
		"SwitchServiceTypeCommand must be created via NewSwitchServiceTypeCommand constructor",
	)
)

// SwitchServiceTypeCommand moves a session's intake between STANDARD and
// EXPRESS. Items lose the fields the new service type does not carry.
type SwitchServiceTypeCommand struct { //nolint:recvcheck //using for validation
	session     string
	serviceType shipment.ServiceType

	guard guard.ConstructorGuard
}

func NewSwitchServiceTypeCommand(session string, serviceType shipment.ServiceType) (SwitchServiceTypeCommand, error) {
	cmd := SwitchServiceTypeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setServiceType(serviceType),
	); err != nil {
		return SwitchServiceTypeCommand{}, err
	}

	return cmd, nil
}

func (c SwitchServiceTypeCommand) Validate() error {
	return c.guard.Validate(ErrSwitchServiceTypeCommandIsNotConstructed)
}

func (c SwitchServiceTypeCommand) Session() string                   { return c.session }
func (c SwitchServiceTypeCommand) ServiceType() shipment.ServiceType { return c.serviceType }

func (c *SwitchServiceTypeCommand) setSession(session string) error {
	if session == "" {
		return ErrSessionIsRequired
	}

	c.session = session
	return nil
}

func (c *SwitchServiceTypeCommand) setServiceType(serviceType shipment.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}
