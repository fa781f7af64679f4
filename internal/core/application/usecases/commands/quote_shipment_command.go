package commands

import (
	"errors"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/guard"
)

var (
	ErrQuoteShipmentCommandIsNotConstructed = errors.New(
		"QuoteShipmentCommand must be created via NewQuoteShipmentCommand constructor",
	)
	ErrSessionIsRequired = errors.New("session is required")
)

// QuoteShipmentCommand asks the order desk to price a booking form for one
// back-office session. Intake validation happens in the handler so that field
// errors are reported together.
//
// Example:
//
//	cmd, err := NewQuoteShipmentCommand("desk-7", intake)
//	if err != nil {
//	    return err
//	}
//	pricing, err := handler.Handle(ctx, cmd)
type QuoteShipmentCommand struct { //nolint:recvcheck //using for validation
	session string
	intake  shipment.Intake

	guard guard.ConstructorGuard
}

func NewQuoteShipmentCommand(session string, intake shipment.Intake) (QuoteShipmentCommand, error) {
	cmd := QuoteShipmentCommand{
		intake: intake,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setSession(session); err != nil {
		return QuoteShipmentCommand{}, err
	}

	return cmd, nil
}

func (c QuoteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrQuoteShipmentCommandIsNotConstructed)
}

func (c QuoteShipmentCommand) Session() string         { return c.session }
func (c QuoteShipmentCommand) Intake() shipment.Intake { return c.intake }

func (c *QuoteShipmentCommand) setSession(session string) error {
	if session == "" {
		return ErrSessionIsRequired
	}

	c.session = session
	return nil
}
