package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcel/internal/pkg/errs"
)

// cubicCentimetresPerCubicMetre converts L·W·H in centimetres to cubic metres.
const cubicCentimetresPerCubicMetre = 1_000_000

// Dimensions is a parcel's length, width and height in centimetres.
// The zero value is the "not measured" default applied when an item switches
// to STANDARD service.
type Dimensions struct {
	length float64
	width  float64
	height float64
}

// NewDimensions rejects negative and non-finite sides. Zero is allowed.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	if err := errors.Join(
		validateSide("length", length),
		validateSide("width", width),
		validateSide("height", height),
	); err != nil {
		return Dimensions{}, err
	}

	return Dimensions{length: length, width: width, height: height}, nil
}

func (d Dimensions) Length() float64 { return d.length }
func (d Dimensions) Width() float64  { return d.width }
func (d Dimensions) Height() float64 { return d.height }

// Volume returns L·W·H / 1,000,000 in cubic metres.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height / cubicCentimetresPerCubicMetre
}

func (d Dimensions) IsZero() bool {
	return d.length == 0 && d.width == 0 && d.height == 0
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g cm", d.length, d.width, d.height)
}

func validateSide(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a finite number", v))
	}
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, "unbounded")
	}
	return nil
}
