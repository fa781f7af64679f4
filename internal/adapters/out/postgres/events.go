package postgres

import (
	"encoding/json"
	"time"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
)

// statusChangedPayload is the published JSON form of shipment.StatusChanged.
// From is empty for the event raised when the shipment is created.
type statusChangedPayload struct {
	EventID      string    `json:"event_id"`
	ShipmentID   string    `json:"shipment_id"`
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code"`
	From         string    `json:"from,omitempty"`
	To           string    `json:"to"`
	Step         string    `json:"step,omitempty"`
	Branch       string    `json:"branch"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func statusChangedMessage(e shipment.StatusChanged) (ports.OutboxMessage, error) {
	p := statusChangedPayload{
		EventID:      e.EventID.String(),
		ShipmentID:   e.ShipmentID.String(),
		OrderID:      e.OrderID,
		TrackingCode: e.TrackingCode,
		To:           e.To.String(),
		Branch:       e.Branch.String(),
		OccurredAt:   e.OccurredAt,
	}
	if e.From != shipment.Unknown {
		p.From = e.From.String()
	}
	if e.Step != shipment.UnknownStep {
		p.Step = e.Step.String()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:         e.EventID,
		Topic:      e.Name(),
		Key:        e.ShipmentID.String(),
		Payload:    payload,
		OccurredAt: e.OccurredAt,
	}, nil
}
