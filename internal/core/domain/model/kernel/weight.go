package kernel

import (
	"fmt"
	"math"

	"parcel/internal/pkg/errs"
)

// Weight is a mass in grams. Zero means "not declared".
type Weight struct {
	grams float64
}

func NewWeight(grams float64) (Weight, error) {
	if math.IsNaN(grams) || math.IsInf(grams, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a finite number", grams))
	}
	if grams < 0 {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", grams, 0, "unbounded")
	}
	return Weight{grams: grams}, nil
}

func (w Weight) Grams() float64 { return w.grams }

func (w Weight) IsZero() bool { return w.grams == 0 }

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams + other.grams}
}

func (w Weight) String() string {
	return fmt.Sprintf("%g g", w.grams)
}
