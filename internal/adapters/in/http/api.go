package http

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// Error is the body of every failing response.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	// Details joins Errors as "field: message" pairs, ordered by field.
	Details      string `json:"details,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
	TrackingCode string `json:"tracking_code,omitempty"`
}

type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Party struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Province Region `json:"province"`
	Ward     Region `json:"ward"`
}

type Item struct {
	Name          string  `json:"name"`
	WeightGrams   float64 `json:"weight_grams"`
	LengthCM      float64 `json:"length_cm,omitempty"`
	WidthCM       float64 `json:"width_cm,omitempty"`
	HeightCM      float64 `json:"height_cm,omitempty"`
	Size          string  `json:"size,omitempty"`
	Category      string  `json:"category,omitempty"`
	DeclaredValue int64   `json:"declared_value"`
}

// IntakeRequest is the booking form submitted for a quote.
type IntakeRequest struct {
	Sender           Party  `json:"sender"`
	Receiver         Party  `json:"receiver"`
	ServiceType      string `json:"service_type"`
	Items            []Item `json:"items"`
	DeclaredValue    int64  `json:"declared_value"`
	Category         string `json:"category"`
	PickupDate       string `json:"pickup_date"`
	PickupSlot       string `json:"pickup_slot"`
	InspectionPolicy string `json:"inspection_policy"`
	PaymentMethod    string `json:"payment_method"`
	Payer            string `json:"payer"`
	Note             string `json:"note,omitempty"`
}

type ServiceTypeRequest struct {
	ServiceType string `json:"service_type"`
}

type Measurement struct {
	WeightGrams float64 `json:"weight_grams"`
	LengthCM    float64 `json:"length_cm"`
	WidthCM     float64 `json:"width_cm"`
	HeightCM    float64 `json:"height_cm"`
}

type Payment struct {
	Method string `json:"method"`
	Amount int64  `json:"amount"`
}

type CheckIn struct {
	Shift string    `json:"shift"`
	At    time.Time `json:"at"`
}

// StepRequest carries the checklist answers for one step.
type StepRequest struct {
	Flags       map[string]bool `json:"flags"`
	Note        string          `json:"note,omitempty"`
	Measurement *Measurement    `json:"measurement,omitempty"`
	Payment     *Payment        `json:"payment,omitempty"`
	CheckIn     *CheckIn        `json:"check_in,omitempty"`
}

type PricingBreakdown struct {
	BasePrice        int64   `json:"base_price"`
	ExtraWeightPrice int64   `json:"extra_weight_price"`
	RouteType        string  `json:"route_type"`
	VehicleType      string  `json:"vehicle_type"`
	SLAClass         string  `json:"sla_class"`
	ChargeableWeight float64 `json:"chargeable_weight"`
	ActualWeight     float64 `json:"actual_weight"`
	VolumetricWeight float64 `json:"volumetric_weight"`
}

// Quote has a null estimated fee when the desk could not price the intake.
type Quote struct {
	EstimatedFee     *int64           `json:"estimated_fee"`
	PricingBreakdown PricingBreakdown `json:"pricing_breakdown"`
}

type Order struct {
	OrderID      string `json:"order_id"`
	TrackingCode string `json:"tracking_code"`
}

type Flow struct {
	Session     string `json:"session"`
	Stage       string `json:"stage"`
	InFlight    bool   `json:"in_flight"`
	ServiceType string `json:"service_type"`
	Items       int    `json:"items"`
	QuoteKey    string `json:"quote_key,omitempty"`
	ConfirmKey  string `json:"confirm_key,omitempty"`
	Quote       *Quote `json:"quote,omitempty"`
	Order       *Order `json:"order,omitempty"`
}

type Deviations struct {
	Item           bool `json:"item"`
	Price          bool `json:"price"`
	PaymentPending bool `json:"payment_pending"`
}

// Shipment is the back-office view of a shipment. Unknown fees are null.
type Shipment struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"order_id"`
	TrackingCode    string     `json:"tracking_code"`
	Status          string     `json:"status"`
	ServiceType     string     `json:"service_type"`
	ReceiverName    string     `json:"receiver_name,omitempty"`
	EstimatedFee    *int64     `json:"estimated_fee"`
	ActualFee       *int64     `json:"actual_fee"`
	PriceDifference *int64     `json:"price_difference"`
	Deviations      Deviations `json:"deviations"`
	Problems        []string   `json:"problems,omitempty"`
	Note            string     `json:"note,omitempty"`
	AvailableSteps  []string   `json:"available_steps"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ShipmentSummary struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	ReceiverName string    `json:"receiver_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p Party) toDomain() shipment.Party {
	return shipment.Party{
		Name:     p.Name,
		Phone:    p.Phone,
		Address:  p.Address,
		Province: shipment.Region{Code: p.Province.Code, Name: p.Province.Name},
		Ward:     shipment.Region{Code: p.Ward.Code, Name: p.Ward.Name},
	}
}

// toDomain builds the intake and reports every malformed field at once.
// Business rules are left to Intake.Validate.
func (r IntakeRequest) toDomain() (shipment.Intake, error) {
	var errList []error

	st, err := shipment.ParseServiceType(r.ServiceType)
	errList = append(errList, err)

	items := make([]shipment.Item, 0, len(r.Items))
	for i, it := range r.Items {
		item, itemErr := it.toDomain(st)
		if itemErr != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, itemErr))
			continue
		}
		items = append(items, item)
	}

	var pickup time.Time
	if r.PickupDate != "" {
		pickup, err = time.Parse(dateLayout, r.PickupDate)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("pickup date", err))
		}
	}

	if err = errors.Join(errList...); err != nil {
		return shipment.Intake{}, err
	}

	return shipment.Intake{
		Sender:           r.Sender.toDomain(),
		Receiver:         r.Receiver.toDomain(),
		ServiceType:      st,
		Items:            items,
		DeclaredValue:    r.DeclaredValue,
		Category:         r.Category,
		PickupDate:       pickup,
		PickupSlot:       r.PickupSlot,
		InspectionPolicy: shipment.InspectionPolicy(r.InspectionPolicy),
		PaymentMethod:    shipment.PaymentMethod(r.PaymentMethod),
		Payer:            shipment.Payer(r.Payer),
		Note:             r.Note,
	}, nil
}

func (it Item) toDomain(st shipment.ServiceType) (shipment.Item, error) {
	weight, weightErr := kernel.NewWeight(it.WeightGrams)
	dims, dimsErr := kernel.NewDimensions(it.LengthCM, it.WidthCM, it.HeightCM)
	if err := errors.Join(weightErr, dimsErr); err != nil {
		return shipment.Item{}, err
	}
	return shipment.NewItem(it.Name, st, weight, dims, shipment.SizeClass(it.Size), it.Category, it.DeclaredValue)
}

func (r StepRequest) toDomain() (commands.StepData, error) {
	data := commands.StepData{
		Flags: r.Flags,
		Note:  r.Note,
	}

	if m := r.Measurement; m != nil {
		weight, weightErr := kernel.NewWeight(m.WeightGrams)
		dims, dimsErr := kernel.NewDimensions(m.LengthCM, m.WidthCM, m.HeightCM)
		if err := errors.Join(weightErr, dimsErr); err != nil {
			return commands.StepData{}, err
		}
		data.Measurement = &shipment.Measurement{Weight: weight, Dimensions: dims}
	}
	if p := r.Payment; p != nil {
		data.Payment = &shipment.Payment{Method: shipment.PaymentMethod(p.Method), Amount: p.Amount}
	}
	if c := r.CheckIn; c != nil {
		data.CheckIn = &shipment.CheckIn{Shift: c.Shift, At: c.At}
	}

	return data, nil
}

func toQuote(p shipment.PricingBreakdown) Quote {
	return Quote{
		EstimatedFee: p.EstimatedFee.Pointer(),
		PricingBreakdown: PricingBreakdown{
			BasePrice:        p.BasePrice,
			ExtraWeightPrice: p.ExtraWeightPrice,
			RouteType:        p.RouteType,
			VehicleType:      p.VehicleType,
			SLAClass:         p.SLAClass,
			ChargeableWeight: p.ChargeableWeight,
			ActualWeight:     p.ActualWeight,
			VolumetricWeight: p.VolumetricWeight,
		},
	}
}

func toFlow(st orderflow.State) Flow {
	f := Flow{
		Session:     st.Session,
		Stage:       st.Stage.String(),
		InFlight:    st.InFlight,
		ServiceType: st.Intake.ServiceType.String(),
		Items:       len(st.Intake.Items),
		QuoteKey:    st.QuoteKey,
		ConfirmKey:  st.ConfirmKey,
	}
	if st.Pricing != nil {
		q := toQuote(*st.Pricing)
		f.Quote = &q
	}
	if st.Order != nil {
		f.Order = &Order{OrderID: st.Order.OrderID, TrackingCode: st.Order.TrackingCode}
	}
	return f
}

func toShipment(s *shipment.Shipment) Shipment {
	var actual, difference *int64
	if r, ok := s.Reconciliation(); ok {
		actual = r.ActualFee.Pointer()
		difference = r.PriceDifference.Pointer()
	}
	d := s.Deviations()

	return Shipment{
		ID:              s.ID().String(),
		OrderID:         s.OrderID(),
		TrackingCode:    s.TrackingCode(),
		Status:          s.Status().String(),
		ServiceType:     s.Intake().ServiceType.String(),
		ReceiverName:    s.Intake().Receiver.Name,
		EstimatedFee:    s.EstimatedFee().Pointer(),
		ActualFee:       actual,
		PriceDifference: difference,
		Deviations:      Deviations{Item: d.Item, Price: d.Price, PaymentPending: d.PaymentPending},
		Problems:        s.Problems(),
		Note:            s.Note(),
		AvailableSteps:  stepNames(s.AvailableSteps()),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
}

func toShipmentView(v queries.GetShipmentQueryResponse) Shipment {
	return Shipment{
		ID:              v.ID.String(),
		OrderID:         v.OrderID,
		TrackingCode:    v.TrackingCode,
		Status:          v.Status.String(),
		ServiceType:     v.ServiceType.String(),
		ReceiverName:    v.ReceiverName,
		EstimatedFee:    v.EstimatedFee.Pointer(),
		ActualFee:       v.ActualFee.Pointer(),
		PriceDifference: v.PriceDifference.Pointer(),
		Deviations:      Deviations{Item: v.Deviations.Item, Price: v.Deviations.Price, PaymentPending: v.Deviations.PaymentPending},
		Problems:        v.Problems,
		Note:            v.Note,
		AvailableSteps:  stepNames(v.AvailableSteps),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toShipmentSummaries(list []queries.ShipmentSummary) []ShipmentSummary {
	out := make([]ShipmentSummary, 0, len(list))
	for _, s := range list {
		out = append(out, ShipmentSummary{
			ID:           s.ID.String(),
			OrderID:      s.OrderID,
			TrackingCode: s.TrackingCode,
			Status:       s.Status.String(),
			ReceiverName: s.ReceiverName,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return out
}

func stepNames(steps []shipment.Step) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.String())
	}
	return names
}
