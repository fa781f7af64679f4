package shipment

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// ServiceType decides which size attributes an item carries: STANDARD items
// are measured in centimetres, EXPRESS items pick a size class.
type ServiceType int

const (
	UnknownServiceType ServiceType = iota
	Standard
	Express
)

func ParseServiceType(name string) (ServiceType, error) {
	switch name {
	case "STANDARD":
		return Standard, nil
	case "EXPRESS":
		return Express, nil
	default:
		return UnknownServiceType, errs.NewValueIsInvalidErrorWithCause(
			"service type",
			fmt.Errorf("%q is not a valid service type", name),
		)
	}
}

func (t ServiceType) Validate() error {
	if t != Standard && t != Express {
		return errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%d is not a valid service type", t))
	}
	return nil
}

func (t ServiceType) String() string {
	switch t {
	case Standard:
		return "STANDARD"
	case Express:
		return "EXPRESS"
	default:
		return "UNKNOWN"
	}
}

// SizeClass is the discrete size of an EXPRESS item. The empty value means
// no size has been chosen yet.
type SizeClass string

const (
	NoSize SizeClass = ""
	SizeS  SizeClass = "S"
	SizeM  SizeClass = "M"
	SizeL  SizeClass = "L"
	SizeXL SizeClass = "XL"
)

func (c SizeClass) Validate() error {
	switch c {
	case NoSize, SizeS, SizeM, SizeL, SizeXL:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("size class", fmt.Errorf("%q is not one of S, M, L, XL", string(c)))
	}
}

// InspectionPolicy says whether the receiver may open the parcel before paying.
type InspectionPolicy string

const (
	InspectionAllowed   InspectionPolicy = "ALLOW_INSPECTION"
	InspectionForbidden InspectionPolicy = "NO_INSPECTION"
	InspectionTryOn     InspectionPolicy = "ALLOW_TRY_ON"
)

func (p InspectionPolicy) Validate() error {
	switch p {
	case InspectionAllowed, InspectionForbidden, InspectionTryOn:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("inspection policy", fmt.Errorf("%q is not supported", string(p)))
	}
}

// PaymentMethod is how the fee is settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentEWallet      PaymentMethod = "E_WALLET"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentEWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

// Payer is the party billed for the shipment.
type Payer string

const (
	PayerSender   Payer = "SENDER"
	PayerReceiver Payer = "RECEIVER"
)

func (p Payer) Validate() error {
	if p != PayerSender && p != PayerReceiver {
		return errs.NewValueIsInvalidErrorWithCause("payer", fmt.Errorf("%q is not SENDER or RECEIVER", string(p)))
	}
	return nil
}
