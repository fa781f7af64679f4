package shipment

import (
	"errors"
	"fmt"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one declared line of a shipment. A STANDARD item may carry
// dimensions and never a size class; an EXPRESS item the reverse.
type Item struct {
	name          string
	serviceType   ServiceType
	weight        kernel.Weight
	dimensions    kernel.Dimensions
	size          SizeClass
	category      string
	declaredValue int64
	guard         guard.ConstructorGuard
}

func NewItem(
	name string,
	serviceType ServiceType,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	size SizeClass,
	category string,
	declaredValue int64,
) (Item, error) {
	var nameErr, valueErr, exclusiveErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if declaredValue < 0 {
		valueErr = errs.NewValueIsOutOfRangeError("item declared value", declaredValue, 0, "unbounded")
	}
	switch {
	case serviceType == Standard && size != NoSize:
		exclusiveErr = errs.NewValueIsInvalidErrorWithCause("item size", fmt.Errorf("STANDARD items carry dimensions, not size %s", size))
	case serviceType == Express && !dimensions.IsZero():
		exclusiveErr = errs.NewValueIsInvalidErrorWithCause("item dimensions", fmt.Errorf("EXPRESS items carry a size class, not %s", dimensions))
	}

	if err := errors.Join(nameErr, serviceType.Validate(), size.Validate(), valueErr, exclusiveErr); err != nil {
		return Item{}, err
	}

	return Item{
		name:          name,
		serviceType:   serviceType,
		weight:        weight,
		dimensions:    dimensions,
		size:          size,
		category:      category,
		declaredValue: declaredValue,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string                  { return i.name }
func (i Item) ServiceType() ServiceType      { return i.serviceType }
func (i Item) Weight() kernel.Weight         { return i.weight }
func (i Item) Dimensions() kernel.Dimensions { return i.dimensions }
func (i Item) Size() SizeClass               { return i.size }
func (i Item) Category() string              { return i.category }
func (i Item) DeclaredValue() int64          { return i.declaredValue }

// SwitchServiceType moves the item to another service type. The attributes
// of the old type are dropped and the new ones start empty: zero dimensions
// for STANDARD, no size for EXPRESS. Switching to the current type is a no-op.
func (i Item) SwitchServiceType(to ServiceType) (Item, error) {
	if err := to.Validate(); err != nil {
		return Item{}, err
	}
	if to == i.serviceType {
		return i, nil
	}

	next := i
	next.serviceType = to
	next.dimensions = kernel.Dimensions{}
	next.size = NoSize
	return next, nil
}
