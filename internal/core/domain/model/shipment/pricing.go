package shipment

import "parcel/internal/core/domain/model/kernel"

// PricingBreakdown is the quote snapshot returned by the order desk. It is
// never recomputed locally; reconciliation works on top of EstimatedFee.
type PricingBreakdown struct {
	EstimatedFee     kernel.Fee
	BasePrice        int64
	ExtraWeightPrice int64
	RouteType        string
	VehicleType      string
	SLAClass         string
	ChargeableWeight float64
	ActualWeight     float64
	VolumetricWeight float64
}

// Measurement is what staff measured at the Check-Item stage.
type Measurement struct {
	Weight     kernel.Weight
	Dimensions kernel.Dimensions
}

// Reconciliation is the locally recomputed charge after measurement. It is
// provisional: the order desk has not corroborated it.
type Reconciliation struct {
	Measurement     Measurement
	Scale           float64
	ActualFee       kernel.Fee
	PriceDifference kernel.Fee
}
