package kernel

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Fee is an amount in the smallest currency unit that may be unknown.
// An unknown fee is never treated as zero.
type Fee struct {
	amount int64
	known  bool
}

// NewFee returns a known fee. Negative amounts are rejected.
func NewFee(amount int64) (Fee, error) {
	if amount < 0 {
		return Fee{}, errs.NewValueIsOutOfRangeError("fee", amount, 0, "unbounded")
	}
	return Fee{amount: amount, known: true}, nil
}

// UnknownFee is the absent fee.
func UnknownFee() Fee {
	return Fee{}
}

// FeeFromPointer maps nil to UnknownFee.
func FeeFromPointer(amount *int64) (Fee, error) {
	if amount == nil {
		return UnknownFee(), nil
	}
	return NewFee(*amount)
}

func (f Fee) IsKnown() bool {
	return f.known
}

// Amount returns the amount and whether it is known.
func (f Fee) Amount() (int64, bool) {
	return f.amount, f.known
}

// Pointer returns nil for an unknown fee.
func (f Fee) Pointer() *int64 {
	if !f.known {
		return nil
	}
	v := f.amount
	return &v
}

func (f Fee) IsEqual(other Fee) bool {
	return f.known == other.known && f.amount == other.amount
}

func (f Fee) String() string {
	if !f.known {
		return "unknown"
	}
	return fmt.Sprintf("%d", f.amount)
}
