package queries

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListShipmentsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsByStatusQueryHandler(db *gorm.DB) ListShipmentsByStatusQueryHandler {
	return ListShipmentsByStatusQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when nothing matches.
func (h ListShipmentsByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsByStatusQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]ShipmentSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			tracking_code,
			status,
			receiver_name,
			updated_at
		FROM shipments
		WHERE status = ?
		ORDER BY updated_at DESC, id
		LIMIT ?
	`, int(query.Status()), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary ShipmentSummary
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&summary.OrderID,
			&summary.TrackingCode,
			&status,
			&summary.ReceiverName,
			&summary.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = shipmentID
		summary.Status = shipment.Status(status)
		shipments = append(shipments, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
