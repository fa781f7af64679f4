package services

import (
	"math"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
)

// maxFee is the largest amount a float64 holds exactly. Scaled fees are
// clamped to it.
const maxFee = 1 << 53

// ReconcileInput holds declared and measured attributes. Volumes are in cubic
// metres, weights in grams. NaN, infinite, zero or negative values mean
// "missing" and make the matching ratio fall back to 1.
type ReconcileInput struct {
	EstimatedFee    kernel.Fee
	EstimatedVolume float64
	EstimatedWeight float64
	ActualVolume    float64
	ActualWeight    float64
}

// ReconcileResult is the recomputed charge.
type ReconcileResult struct {
	VolumeRatio     float64
	WeightRatio     float64
	Scale           float64
	ActualFee       kernel.Fee
	PriceDifference kernel.Fee
}

// Reconcile scales the estimated fee by whichever measured attribute exceeds
// its declaration the most. The scale is never below 1, so the actual fee is
// never below the estimate.
//
// Algorithm:
//   - volume_ratio = actual / estimated volume, or 1 if either is missing
//   - weight_ratio = actual / estimated weight, or 1 if either is missing
//   - scale = max(volume_ratio, weight_ratio, 1)
//   - actual_fee = round(estimated_fee × scale), half away from zero
//   - price_difference = |actual_fee − estimated_fee|
//
// An unknown estimated fee yields an unknown actual fee and difference.
//
// Example:
//
//	declared 10×10×15 cm (0.0015 m³), measured 15×20×10 cm (0.003 m³)
//	estimated 100000 ⇒ volume_ratio 2 ⇒ actual 200000, difference 100000
func Reconcile(in ReconcileInput) ReconcileResult {
	res := ReconcileResult{
		VolumeRatio: ratio(in.ActualVolume, in.EstimatedVolume),
		WeightRatio: ratio(in.ActualWeight, in.EstimatedWeight),
	}
	res.Scale = math.Max(math.Max(res.VolumeRatio, res.WeightRatio), 1)

	estimated, ok := in.EstimatedFee.Amount()
	if !ok {
		res.ActualFee = kernel.UnknownFee()
		res.PriceDifference = kernel.UnknownFee()
		return res
	}

	scaled := math.Min(math.Round(float64(estimated)*res.Scale), maxFee)
	actual := max(int64(scaled), estimated)

	// Both amounts are non-negative here, so NewFee cannot fail.
	res.ActualFee, _ = kernel.NewFee(actual)
	res.PriceDifference, _ = kernel.NewFee(actual - estimated)
	return res
}

func ratio(actual, estimated float64) float64 {
	if !positiveFinite(actual) || !positiveFinite(estimated) {
		return 1
	}
	r := actual / estimated
	if !positiveFinite(r) {
		return 1
	}
	return r
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// PriceReconciler runs Reconcile for a shipment at the Check-Item stage.
//
// Declared attributes come from the shipment's booking: volumes and weights
// are summed over items, and EXPRESS items add no volume. The result is
// provisional since the order desk is not asked to corroborate it.
type PriceReconciler struct{}

func NewPriceReconciler() PriceReconciler {
	return PriceReconciler{}
}

// ReconcileShipment returns the reconciliation to submit with CHECK_ITEM.
func (PriceReconciler) ReconcileShipment(s *shipment.Shipment, m shipment.Measurement) (shipment.Reconciliation, error) {
	if err := s.Validate(); err != nil {
		return shipment.Reconciliation{}, err
	}

	intake := s.Intake()
	res := Reconcile(ReconcileInput{
		EstimatedFee:    s.EstimatedFee(),
		EstimatedVolume: intake.DeclaredVolume(),
		EstimatedWeight: intake.DeclaredWeight().Grams(),
		ActualVolume:    m.Dimensions.Volume(),
		ActualWeight:    m.Weight.Grams(),
	})

	return shipment.Reconciliation{
		Measurement:     m,
		Scale:           res.Scale,
		ActualFee:       res.ActualFee,
		PriceDifference: res.PriceDifference,
	}, nil
}
