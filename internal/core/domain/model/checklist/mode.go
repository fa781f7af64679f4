package checklist

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Mode decides how a gate aggregates its items.
type Mode int

const (
	// Unknown is the zero value and is never a valid mode.
	Unknown Mode = iota

	// All is satisfied when every item is checked. An empty ALL gate is satisfied.
	All

	// Any is satisfied when at least one item is checked. An empty ANY gate is not.
	Any
)

func (m Mode) String() string {
	switch m {
	case All:
		return "ALL"
	case Any:
		return "ANY"
	default:
		return "Unknown"
	}
}

func (m Mode) Validate() error {
	if m != All && m != Any {
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%d is not a valid checklist mode", m))
	}
	return nil
}

// Evaluate is the gate predicate over bare flags.
func Evaluate(mode Mode, flags ...bool) bool {
	switch mode {
	case All:
		for _, f := range flags {
			if !f {
				return false
			}
		}
		return true
	case Any:
		for _, f := range flags {
			if f {
				return true
			}
		}
		return false
	default:
		return false
	}
}
