package shipment

import (
	"errors"
	"maps"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrDecisionIsNotConstructed = errors.New("Decision must be created via Shipment.PlanStep")

// Payment is the amount collected from the payer.
type Payment struct {
	Method PaymentMethod
	Amount int64
}

// CheckIn is the origin warehouse reconciliation record.
type CheckIn struct {
	Shift string
	At    time.Time
}

// StepInput is what staff submit with a step. Only the field matching the
// step is read: Reconciliation for CHECK_ITEM, Payment for COLLECT_PAYMENT and
// CheckIn for CHECK_IN_ORIGIN.
type StepInput struct {
	Flags          map[string]bool
	Note           string
	Reconciliation *Reconciliation
	Payment        *Payment
	CheckIn        *CheckIn
}

// Decision is a planned, not yet applied, transition. It exists so the caller
// can push the new status to the order desk before mutating the aggregate.
type Decision struct {
	shipmentID kernel.UUID
	step       Step
	from       Status
	verdict    Verdict
	flags      map[string]bool
	input      StepInput
	guard      guard.ConstructorGuard
}

func (d Decision) Validate() error {
	return d.guard.Validate(ErrDecisionIsNotConstructed)
}

func (d Decision) ShipmentID() kernel.UUID { return d.shipmentID }
func (d Decision) Step() Step              { return d.step }
func (d Decision) From() Status            { return d.from }
func (d Decision) To() Status              { return d.verdict.To }
func (d Decision) Branch() Branch          { return d.verdict.Branch }

// Checked lists the items of the winning gate that were checked.
func (d Decision) Checked() []string {
	return d.verdict.Gate.Checked()
}

// Flags returns the evaluated flags, derived ones included.
func (d Decision) Flags() map[string]bool {
	return maps.Clone(d.flags)
}

// Payload is the stage-specific body sent with updateStatus.
type Payload struct {
	Step    Step
	Status  Status
	Note    string
	Checked []string

	Measurement     *Measurement
	ActualFee       *int64
	PriceDifference *int64

	PaymentMethod PaymentMethod
	PaymentAmount *int64

	ReconciliationShift string
	CheckInAt           *time.Time

	Problems []string
}

func (d Decision) Payload() Payload {
	p := Payload{
		Step:    d.step,
		Status:  d.verdict.To,
		Note:    d.input.Note,
		Checked: d.Checked(),
	}

	switch d.step { //nolint:exhaustive // only steps with a body are listed
	case CheckItem:
		if r := d.input.Reconciliation; r != nil {
			m := r.Measurement
			p.Measurement = &m
			p.ActualFee = r.ActualFee.Pointer()
			p.PriceDifference = r.PriceDifference.Pointer()
		}
	case CollectPayment:
		if pay := d.input.Payment; pay != nil {
			amount := pay.Amount
			p.PaymentMethod = pay.Method
			p.PaymentAmount = &amount
		}
	case CheckInOrigin:
		if c := d.input.CheckIn; c != nil {
			at := c.At
			p.ReconciliationShift = c.Shift
			p.CheckInAt = &at
		}
	case ReportIssue:
		p.Problems = d.Checked()
	}

	return p
}
