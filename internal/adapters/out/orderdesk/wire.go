package orderdesk

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
)

const pickupDateLayout = "2006-01-02"

type partyJSON struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProvinceCode string `json:"province_code"`
	ProvinceName string `json:"province_name,omitempty"`
	WardCode     string `json:"ward_code"`
	WardName     string `json:"ward_name,omitempty"`
}

type itemJSON struct {
	Name          string  `json:"name"`
	WeightGrams   float64 `json:"weight_grams"`
	LengthCM      float64 `json:"length_cm,omitempty"`
	WidthCM       float64 `json:"width_cm,omitempty"`
	HeightCM      float64 `json:"height_cm,omitempty"`
	Size          string  `json:"size,omitempty"`
	Category      string  `json:"category,omitempty"`
	DeclaredValue int64   `json:"declared_value"`
}

type intakeJSON struct {
	Sender           partyJSON  `json:"sender"`
	Receiver         partyJSON  `json:"receiver"`
	ServiceType      string     `json:"service_type"`
	Items            []itemJSON `json:"items"`
	DeclaredValue    int64      `json:"declared_value"`
	Category         string     `json:"category,omitempty"`
	PickupDate       string     `json:"pickup_date,omitempty"`
	PickupSlot       string     `json:"pickup_slot,omitempty"`
	InspectionPolicy string     `json:"inspection_policy"`
	PaymentMethod    string     `json:"payment_method"`
	Payer            string     `json:"payer"`
	Note             string     `json:"note,omitempty"`
}

type breakdownJSON struct {
	BasePrice        int64   `json:"base_price"`
	ExtraWeightPrice int64   `json:"extra_weight_price"`
	RouteType        string  `json:"route_type"`
	VehicleType      string  `json:"vehicle_type"`
	SLAClass         string  `json:"sla_class"`
	ChargeableWeight float64 `json:"chargeable_weight"`
	ActualWeight     float64 `json:"actual_weight"`
	VolumetricWeight float64 `json:"volumetric_weight"`
}

type quoteResponseJSON struct {
	EstimatedFee     *int64        `json:"estimated_fee"`
	PricingBreakdown breakdownJSON `json:"pricing_breakdown"`
}

type createResponseJSON struct {
	OrderID      string `json:"order_id"`
	TrackingCode string `json:"tracking_code"`
}

type measurementJSON struct {
	WeightGrams float64 `json:"weight_grams"`
	LengthCM    float64 `json:"length_cm"`
	WidthCM     float64 `json:"width_cm"`
	HeightCM    float64 `json:"height_cm"`
}

type stagePayloadJSON struct {
	Measurement         *measurementJSON `json:"measurement,omitempty"`
	ActualFee           *int64           `json:"actual_fee,omitempty"`
	PriceDifference     *int64           `json:"price_difference,omitempty"`
	PaymentMethod       string           `json:"payment_method,omitempty"`
	PaymentAmount       *int64           `json:"payment_amount,omitempty"`
	ReconciliationShift string           `json:"reconciliation_shift,omitempty"`
	CheckInAt           *time.Time       `json:"check_in_at,omitempty"`
	Problems            []string         `json:"problems,omitempty"`
}

type statusRequestJSON struct {
	Status  string            `json:"status"`
	Step    string            `json:"step"`
	Note    string            `json:"note,omitempty"`
	Checked []string          `json:"checked"`
	Payload *stagePayloadJSON `json:"payload,omitempty"`
}

// errorResponseJSON is the body of every failing response.
type errorResponseJSON struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func toPartyJSON(p shipment.Party) partyJSON {
	return partyJSON{
		Name:         p.Name,
		Phone:        p.Phone,
		Address:      p.Address,
		ProvinceCode: p.Province.Code,
		ProvinceName: p.Province.Name,
		WardCode:     p.Ward.Code,
		WardName:     p.Ward.Name,
	}
}

func toIntakeJSON(in shipment.Intake) intakeJSON {
	items := make([]itemJSON, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, itemJSON{
			Name:          it.Name(),
			WeightGrams:   it.Weight().Grams(),
			LengthCM:      it.Dimensions().Length(),
			WidthCM:       it.Dimensions().Width(),
			HeightCM:      it.Dimensions().Height(),
			Size:          string(it.Size()),
			Category:      it.Category(),
			DeclaredValue: it.DeclaredValue(),
		})
	}

	body := intakeJSON{
		Sender:           toPartyJSON(in.Sender),
		Receiver:         toPartyJSON(in.Receiver),
		ServiceType:      in.ServiceType.String(),
		Items:            items,
		DeclaredValue:    in.DeclaredValue,
		Category:         in.Category,
		PickupSlot:       in.PickupSlot,
		InspectionPolicy: string(in.InspectionPolicy),
		PaymentMethod:    string(in.PaymentMethod),
		Payer:            string(in.Payer),
		Note:             in.Note,
	}
	if !in.PickupDate.IsZero() {
		body.PickupDate = in.PickupDate.Format(pickupDateLayout)
	}
	return body
}

func (r quoteResponseJSON) toDomain() (shipment.PricingBreakdown, error) {
	fee, err := kernel.FeeFromPointer(r.EstimatedFee)
	if err != nil {
		return shipment.PricingBreakdown{}, fmt.Errorf("estimated fee: %w", err)
	}

	b := r.PricingBreakdown
	return shipment.PricingBreakdown{
		EstimatedFee:     fee,
		BasePrice:        b.BasePrice,
		ExtraWeightPrice: b.ExtraWeightPrice,
		RouteType:        b.RouteType,
		VehicleType:      b.VehicleType,
		SLAClass:         b.SLAClass,
		ChargeableWeight: b.ChargeableWeight,
		ActualWeight:     b.ActualWeight,
		VolumetricWeight: b.VolumetricWeight,
	}, nil
}

func (r createResponseJSON) toDomain() (ports.CreatedOrder, error) {
	if r.OrderID == "" {
		return ports.CreatedOrder{}, errors.New("order_id is missing")
	}
	return ports.CreatedOrder{OrderID: r.OrderID, TrackingCode: r.TrackingCode}, nil
}

func toStatusRequestJSON(p shipment.Payload) statusRequestJSON {
	body := statusRequestJSON{
		Status:  p.Status.String(),
		Step:    p.Step.String(),
		Note:    p.Note,
		Checked: p.Checked,
	}
	if body.Checked == nil {
		body.Checked = []string{}
	}

	stage := stagePayloadJSON{
		ActualFee:           p.ActualFee,
		PriceDifference:     p.PriceDifference,
		PaymentMethod:       string(p.PaymentMethod),
		PaymentAmount:       p.PaymentAmount,
		ReconciliationShift: p.ReconciliationShift,
		CheckInAt:           p.CheckInAt,
		Problems:            p.Problems,
	}
	if m := p.Measurement; m != nil {
		stage.Measurement = &measurementJSON{
			WeightGrams: m.Weight.Grams(),
			LengthCM:    m.Dimensions.Length(),
			WidthCM:     m.Dimensions.Width(),
			HeightCM:    m.Dimensions.Height(),
		}
	}
	if !stage.isEmpty() {
		body.Payload = &stage
	}
	return body
}

func (s stagePayloadJSON) isEmpty() bool {
	return s.Measurement == nil && s.ActualFee == nil && s.PriceDifference == nil &&
		s.PaymentMethod == "" && s.PaymentAmount == nil &&
		s.ReconciliationShift == "" && s.CheckInAt == nil && len(s.Problems) == 0
}
