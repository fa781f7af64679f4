package shipment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")
)

// Deviations records which branching pairs took the needs-adjustment side.
// Price is also set when the confirmed charge is above the quote. They stay
// set for the rest of the lifecycle.
type Deviations struct {
	Item           bool
	Price          bool
	PaymentPending bool
}

// Shipment is the aggregate root for a confirmed order. It is created at
// ON_THE_WAY_PICKUP once the order desk has confirmed the order and from
// then on changes only through PlanStep followed by Apply.
//
// Shipment follows these invariants:
//   - exactly one status at a time, moved only along the step table
//   - a terminal status admits no step
//   - the estimated fee never changes after creation
//   - a reconciled actual fee is never below the estimated fee
type Shipment struct {
	id             kernel.UUID
	orderID        string
	trackingCode   string
	idempotencyKey string

	intake  Intake
	status  Status
	pricing PricingBreakdown

	reconciliation *Reconciliation
	deviations     Deviations
	payment        *Payment
	checkIn        *CheckIn
	problems       []string
	note           string

	createdAt time.Time
	updatedAt time.Time

	events []StatusChanged

	guard guard.ConstructorGuard
}

// NewShipment creates the shipment for a freshly confirmed order and raises
// its first StatusChanged event.
func NewShipment(
	id kernel.UUID,
	orderID string,
	trackingCode string,
	idempotencyKey string,
	intake Intake,
	pricing PricingBreakdown,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:    OnTheWayPickup,
		pricing:   pricing,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setIdentity(id, orderID, trackingCode),
		s.setIdempotencyKey(idempotencyKey),
		s.setIntake(intake),
	); err != nil {
		return nil, err
	}

	s.raise(Unknown, UnknownStep, Unbranched, now)
	return s, nil
}

// Snapshot is the full persisted state of a shipment.
type Snapshot struct {
	ID             kernel.UUID
	OrderID        string
	TrackingCode   string
	IdempotencyKey string
	Intake         Intake
	Status         Status
	Pricing        PricingBreakdown
	Reconciliation *Reconciliation
	Deviations     Deviations
	Payment        *Payment
	CheckIn        *CheckIn
	Problems       []string
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreShipment rebuilds a shipment read back from storage. No event is raised.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		idempotencyKey: snap.IdempotencyKey,
		intake:         snap.Intake,
		pricing:        snap.Pricing,
		reconciliation: snap.Reconciliation,
		deviations:     snap.Deviations,
		payment:        snap.Payment,
		checkIn:        snap.CheckIn,
		problems:       slices.Clone(snap.Problems),
		note:           snap.Note,
		createdAt:      snap.CreatedAt,
		updatedAt:      snap.UpdatedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setIdentity(snap.ID, snap.OrderID, snap.TrackingCode),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = snap.Status

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID               { return s.id }
func (s *Shipment) OrderID() string               { return s.orderID }
func (s *Shipment) TrackingCode() string          { return s.trackingCode }
func (s *Shipment) IdempotencyKey() string        { return s.idempotencyKey }
func (s *Shipment) Status() Status                { return s.status }
func (s *Shipment) Pricing() PricingBreakdown     { return s.pricing }
func (s *Shipment) EstimatedFee() kernel.Fee      { return s.pricing.EstimatedFee }
func (s *Shipment) Deviations() Deviations        { return s.deviations }
func (s *Shipment) Problems() []string            { return slices.Clone(s.problems) }
func (s *Shipment) Note() string                  { return s.note }
func (s *Shipment) CreatedAt() time.Time          { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time          { return s.updatedAt }
func (s *Shipment) IsTerminal() bool              { return s.status.IsTerminal() }
func (s *Shipment) AvailableSteps() []Step        { return StepsFrom(s.status) }
func (s *Shipment) DomainEvents() []StatusChanged { return slices.Clone(s.events) }

// Intake returns a copy of the booking data.
func (s *Shipment) Intake() Intake {
	in := s.intake
	in.Items = slices.Clone(s.intake.Items)
	return in
}

// Reconciliation returns the recorded reconciliation, if CHECK_ITEM has run.
func (s *Shipment) Reconciliation() (Reconciliation, bool) {
	if s.reconciliation == nil {
		return Reconciliation{}, false
	}
	return *s.reconciliation, true
}

// ActualFee is the reconciled fee, unknown before CHECK_ITEM.
func (s *Shipment) ActualFee() kernel.Fee {
	if s.reconciliation == nil {
		return kernel.UnknownFee()
	}
	return s.reconciliation.ActualFee
}

// ChargeFee is the amount payment collection is checked against: the
// reconciled fee when there is one, the estimate otherwise.
func (s *Shipment) ChargeFee() kernel.Fee {
	if fee := s.ActualFee(); fee.IsKnown() {
		return fee
	}
	return s.pricing.EstimatedFee
}

func (s *Shipment) Payment() (Payment, bool) {
	if s.payment == nil {
		return Payment{}, false
	}
	return *s.payment, true
}

func (s *Shipment) CheckIn() (CheckIn, bool) {
	if s.checkIn == nil {
		return CheckIn{}, false
	}
	return *s.checkIn, true
}

// ClearDomainEvents drops collected events once they have been stored.
func (s *Shipment) ClearDomainEvents() {
	s.events = nil
}

// Snapshot exports the persisted state.
func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.id,
		OrderID:        s.orderID,
		TrackingCode:   s.trackingCode,
		IdempotencyKey: s.idempotencyKey,
		Intake:         s.Intake(),
		Status:         s.status,
		Pricing:        s.pricing,
		Reconciliation: s.reconciliation,
		Deviations:     s.deviations,
		Payment:        s.payment,
		CheckIn:        s.checkIn,
		Problems:       slices.Clone(s.problems),
		Note:           s.note,
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}

// PlanStep judges a step against the current status and the submitted input
// without changing anything. amount_matches_fee is computed here and
// overrides whatever the caller sent.
//
// A failing gate yields an InvalidTransitionError; input that is missing or
// malformed for the step yields a validation error.
func (s *Shipment) PlanStep(step Step, in StepInput) (Decision, error) {
	if err := s.Validate(); err != nil {
		return Decision{}, err
	}
	if err := step.Validate(); err != nil {
		return Decision{}, err
	}
	if s.status.IsTerminal() {
		return Decision{}, errs.NewInvalidTransitionError(s.status.String(), step.String(), "status is terminal")
	}
	if !step.AllowedFrom(s.status) {
		return Decision{}, errs.NewInvalidTransitionError(s.status.String(), step.String(), "step is not allowed from this status")
	}
	if err := s.validateInput(step, in); err != nil {
		return Decision{}, err
	}

	flags := make(map[string]bool, len(in.Flags)+1)
	for k, v := range in.Flags {
		flags[k] = v
	}
	if step == CollectPayment {
		flags[ItemAmountMatchesFee] = s.amountMatchesFee(in.Payment)
	}

	verdict, err := Decide(s.status, step, flags)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		shipmentID: s.id,
		step:       step,
		from:       s.status,
		verdict:    verdict,
		flags:      flags,
		input:      in,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Apply commits a decision made by PlanStep. The gate is evaluated again and
// the decision is refused if the status moved in between.
func (s *Shipment) Apply(d Decision) error {
	if err := errors.Join(s.Validate(), d.Validate()); err != nil {
		return err
	}
	if !d.shipmentID.IsEqual(s.id) {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("planned for shipment %s", d.shipmentID))
	}
	if d.from != s.status {
		return errs.NewInvalidTransitionError(s.status.String(), d.step.String(),
			fmt.Sprintf("status changed from %s since the step was planned", d.from))
	}

	verdict, err := Decide(s.status, d.step, d.flags)
	if err != nil {
		return err
	}
	if verdict.To != d.verdict.To {
		return errs.NewInvalidTransitionError(s.status.String(), d.step.String(), "gate result changed since the step was planned")
	}

	adjusted := verdict.Branch == NeedsAdjustment
	switch d.step { //nolint:exhaustive // only steps that record data are listed
	case CheckItem:
		r := *d.input.Reconciliation
		s.reconciliation = &r
		s.deviations.Item = adjusted
	case CheckPrice:
		s.deviations.Price = adjusted || s.feeRaised()
	case CollectPayment:
		s.deviations.PaymentPending = adjusted
		if d.input.Payment != nil {
			p := *d.input.Payment
			s.payment = &p
		}
	case CheckInOrigin:
		c := *d.input.CheckIn
		s.checkIn = &c
	case ReportIssue:
		s.problems = verdict.Gate.Checked()
	}

	if note := strings.TrimSpace(d.input.Note); note != "" {
		s.note = note
	}

	from := s.status
	s.status = verdict.To
	s.updatedAt = time.Now().UTC()
	s.raise(from, d.step, verdict.Branch, s.updatedAt)

	return nil
}

func (s *Shipment) validateInput(step Step, in StepInput) error {
	switch step { //nolint:exhaustive // only steps with a body are listed
	case CheckItem:
		if in.Reconciliation == nil {
			return errs.NewValueIsRequiredError("measurement")
		}
		return s.validateReconciliation(*in.Reconciliation)
	case CollectPayment:
		if in.Payment == nil {
			return nil
		}
		var amountErr error
		if in.Payment.Amount < 0 {
			amountErr = errs.NewValueIsOutOfRangeError("payment amount", in.Payment.Amount, 0, "unbounded")
		}
		return errors.Join(in.Payment.Method.Validate(), amountErr)
	case CheckInOrigin:
		if in.CheckIn == nil {
			return errs.NewValueIsRequiredError("check-in")
		}
		var errList []error
		if strings.TrimSpace(in.CheckIn.Shift) == "" {
			errList = append(errList, errs.NewValueIsRequiredError("check-in shift"))
		}
		if in.CheckIn.At.IsZero() {
			errList = append(errList, errs.NewValueIsRequiredError("check-in time"))
		}
		return errors.Join(errList...)
	default:
		return nil
	}
}

// validateReconciliation keeps the actual fee tied to the estimate: unknown
// when the estimate is unknown, never below it otherwise.
func (s *Shipment) validateReconciliation(r Reconciliation) error {
	estimated, estimatedKnown := s.pricing.EstimatedFee.Amount()
	actual, actualKnown := r.ActualFee.Amount()

	switch {
	case !estimatedKnown && actualKnown:
		return errs.NewValueIsInvalidErrorWithCause("actual fee", errors.New("estimated fee is unknown"))
	case estimatedKnown && !actualKnown:
		return errs.NewValueIsRequiredError("actual fee")
	case estimatedKnown && actual < estimated:
		return errs.NewValueIsOutOfRangeError("actual fee", actual, estimated, "unbounded")
	default:
		return nil
	}
}

// feeRaised reports whether reconciliation put the charge above the quote.
func (s *Shipment) feeRaised() bool {
	actual, actualKnown := s.ActualFee().Amount()
	estimated, estimatedKnown := s.pricing.EstimatedFee.Amount()
	return actualKnown && estimatedKnown && actual > estimated
}

func (s *Shipment) amountMatchesFee(p *Payment) bool {
	if p == nil {
		return false
	}
	fee, ok := s.ChargeFee().Amount()
	return ok && p.Amount == fee
}

func (s *Shipment) raise(from Status, step Step, branch Branch, at time.Time) {
	s.events = append(s.events, StatusChanged{
		EventID:      kernel.NewUUID(),
		ShipmentID:   s.id,
		OrderID:      s.orderID,
		TrackingCode: s.trackingCode,
		From:         from,
		To:           s.status,
		Step:         step,
		Branch:       branch,
		OccurredAt:   at,
	})
}

func (s *Shipment) setIdentity(id kernel.UUID, orderID, trackingCode string) error {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if orderID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order id"))
	}
	if trackingCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("tracking code"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	s.id = id
	s.orderID = orderID
	s.trackingCode = trackingCode
	return nil
}

func (s *Shipment) setIdempotencyKey(key string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("idempotency key")
	}
	s.idempotencyKey = key
	return nil
}

func (s *Shipment) setIntake(in Intake) error {
	if err := in.Validate(); err != nil {
		return err
	}
	in.Items = slices.Clone(in.Items)
	s.intake = in
	return nil
}
