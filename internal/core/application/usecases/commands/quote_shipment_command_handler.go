package commands

import (
	"context"

	"parcel/internal/core/domain/model/shipment"
)

// QuoteShipmentCommandHandler replaces the session's intake and requests a
// quote under a fresh idempotency key. A remote rejection is returned
// unchanged; the flow then holds the new intake without a quote.
type QuoteShipmentCommandHandler struct {
	flows FlowRegistry
}

func NewQuoteShipmentCommandHandler(flows FlowRegistry) QuoteShipmentCommandHandler {
	return QuoteShipmentCommandHandler{
		flows: flows,
	}
}

func (h QuoteShipmentCommandHandler) Handle(ctx context.Context, cmd QuoteShipmentCommand) (shipment.PricingBreakdown, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.PricingBreakdown{}, err
	}

	return h.flows.Get(cmd.Session()).QuoteIntake(ctx, cmd.Intake())
}
