package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a shipment straight from the shipments table
// without loading the aggregate.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns ErrObjectNotFound when no shipment has the id.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			tracking_code,
			status,
			service_type,
			sender_name,
			receiver_name,
			pricing_estimated_fee,
			reconciliation_actual_fee,
			reconciliation_price_difference,
			item_deviation,
			price_deviation,
			payment_pending,
			problems,
			note,
			created_at,
			updated_at
		FROM shipments
		WHERE id = ?
	`, query.ID().Bytes()).Row()

	var (
		resp                          GetShipmentQueryResponse
		id                            uuid.UUID
		status, serviceType           int
		estimated, actual, difference sql.NullInt64
		problems                      []byte
	)
	err := row.Scan(
		&id,
		&resp.OrderID,
		&resp.TrackingCode,
		&status,
		&serviceType,
		&resp.SenderName,
		&resp.ReceiverName,
		&estimated,
		&actual,
		&difference,
		&resp.Deviations.Item,
		&resp.Deviations.Price,
		&resp.Deviations.PaymentPending,
		&problems,
		&resp.Note,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.ID().String())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	resp.Status = shipment.Status(status)
	resp.ServiceType = shipment.ServiceType(serviceType)
	resp.AvailableSteps = shipment.StepsFrom(resp.Status)

	if resp.EstimatedFee, err = feeFromNull(estimated); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.ActualFee, err = feeFromNull(actual); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.PriceDifference, err = feeFromNull(difference); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if len(problems) > 0 {
		if err = json.Unmarshal(problems, &resp.Problems); err != nil {
			return GetShipmentQueryResponse{}, err
		}
	}

	return resp, nil
}

func feeFromNull(v sql.NullInt64) (kernel.Fee, error) {
	if !v.Valid {
		return kernel.UnknownFee(), nil
	}
	return kernel.NewFee(v.Int64)
}
