package shipment

import (
	"errors"

	"parcel/internal/pkg/errs"
)

// Region is an administrative unit from the address directory. Only the
// code and display name are kept.
type Region struct {
	Code string
	Name string
}

// Party is a sender or receiver.
type Party struct {
	Name     string
	Phone    string
	Address  string
	Province Region
	Ward     Region
}

// Validate checks the fields needed to book a pickup or a delivery. role
// prefixes field names in errors, e.g. "sender.phone".
func (p Party) Validate(role string) error {
	var errList []error
	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"phone", p.Phone},
		{"address", p.Address},
		{"province", p.Province.Code},
		{"ward", p.Ward.Code},
	}
	for _, r := range required {
		if r.value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(role+"."+r.field))
		}
	}
	return errors.Join(errList...)
}
