package shipment

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Intake is the booking form. It has no status and lives only in memory until
// the order is confirmed.
type Intake struct {
	Sender           Party
	Receiver         Party
	ServiceType      ServiceType
	Items            []Item
	DeclaredValue    int64
	Category         string
	PickupDate       time.Time
	PickupSlot       string
	InspectionPolicy InspectionPolicy
	PaymentMethod    PaymentMethod
	Payer            Payer
	Note             string
}

// Validate runs every local check before anything reaches the network.
func (in Intake) Validate() error {
	errList := []error{
		in.Sender.Validate("sender"),
		in.Receiver.Validate("receiver"),
		in.ServiceType.Validate(),
		in.InspectionPolicy.Validate(),
		in.PaymentMethod.Validate(),
		in.Payer.Validate(),
	}

	if len(in.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	for _, it := range in.Items {
		if err := it.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}
		if it.ServiceType() != in.ServiceType {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("%s is %s but the shipment is %s", it.Name(), it.ServiceType(), in.ServiceType),
			))
		}
	}
	if in.DeclaredValue < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("declared value", in.DeclaredValue, 0, "unbounded"))
	}
	if in.PickupDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("pickup date"))
	}
	if in.PickupSlot == "" {
		errList = append(errList, errs.NewValueIsRequiredError("pickup slot"))
	}

	return errors.Join(errList...)
}

// SwitchServiceType returns a copy of the intake with every item migrated.
func (in Intake) SwitchServiceType(to ServiceType) (Intake, error) {
	if err := to.Validate(); err != nil {
		return Intake{}, err
	}

	next := in
	next.ServiceType = to
	next.Items = make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		migrated, err := it.SwitchServiceType(to)
		if err != nil {
			return Intake{}, err
		}
		next.Items = append(next.Items, migrated)
	}
	return next, nil
}

// DeclaredVolume sums item volumes in cubic metres. EXPRESS items contribute
// nothing since they carry no dimensions.
func (in Intake) DeclaredVolume() float64 {
	var v float64
	for _, it := range in.Items {
		v += it.Dimensions().Volume()
	}
	return v
}

func (in Intake) DeclaredWeight() kernel.Weight {
	var w kernel.Weight
	for _, it := range in.Items {
		w = w.Add(it.Weight())
	}
	return w
}
