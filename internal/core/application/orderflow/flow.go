package orderflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// Stage is where a flow stands in the quote/confirm protocol.
type Stage int

const (
	Drafting Stage = iota
	Quoted
	PartiallyConfirmed
	Confirmed
)

func (s Stage) String() string {
	switch s {
	case Drafting:
		return "DRAFTING"
	case Quoted:
		return "QUOTED"
	case PartiallyConfirmed:
		return "PARTIALLY_CONFIRMED"
	case Confirmed:
		return "CONFIRMED"
	default:
		return "UNKNOWN"
	}
}

// Confirmation is everything needed to create the durable shipment.
type Confirmation struct {
	OrderID        string
	TrackingCode   string
	IdempotencyKey string
	Intake         shipment.Intake
	Pricing        shipment.PricingBreakdown
}

// State is a read-only view of a flow.
type State struct {
	Session    string
	Stage      Stage
	InFlight   bool
	Intake     shipment.Intake
	Pricing    *shipment.PricingBreakdown
	QuoteKey   string
	ConfirmKey string
	Order      *ports.CreatedOrder
	LastActive time.Time
}

// Flow is one booking in progress. All methods are safe for concurrent use;
// a mutating call that arrives while another is running returns
// errs.ErrOperationInFlight without doing anything.
type Flow struct {
	session string
	desk    ports.OrderDesk
	keys    KeyGenerator
	now     func() time.Time
	logger  *slog.Logger

	mu          sync.Mutex
	inFlight    bool
	stage       Stage
	intake      shipment.Intake
	pricing     *shipment.PricingBreakdown
	quoteKey    string
	confirmKey  string
	created     *ports.CreatedOrder
	attachments []io.Closer
	lastActive  time.Time
}

func NewFlow(session string, desk ports.OrderDesk, keys KeyGenerator, logger *slog.Logger) *Flow {
	return &Flow{
		session:    session,
		desk:       desk,
		keys:       keys,
		now:        time.Now,
		logger:     logger.With("component", "orderflow", "session", session),
		lastActive: time.Now(),
	}
}

func (f *Flow) Session() string {
	return f.session
}

// State returns a snapshot of the flow.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := State{
		Session:    f.session,
		Stage:      f.stage,
		InFlight:   f.inFlight,
		Intake:     f.intake,
		QuoteKey:   f.quoteKey,
		ConfirmKey: f.confirmKey,
		LastActive: f.lastActive,
	}
	st.Intake.Items = slices.Clone(f.intake.Items)
	if f.pricing != nil {
		p := *f.pricing
		st.Pricing = &p
	}
	if f.created != nil {
		o := *f.created
		st.Order = &o
	}
	return st
}

// SetIntake replaces the booking data. Any quote is dropped since it priced
// the previous data. Not allowed once an order exists.
func (f *Flow) SetIntake(intake shipment.Intake) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editableLocked("SET_INTAKE"); err != nil {
		return err
	}

	intake.Items = slices.Clone(intake.Items)
	f.intake = intake
	f.dropQuoteLocked()
	return nil
}

// SwitchServiceType migrates every item to the new service type and drops the
// quote.
func (f *Flow) SwitchServiceType(to shipment.ServiceType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editableLocked("SWITCH_SERVICE_TYPE"); err != nil {
		return err
	}

	switched, err := f.intake.SwitchServiceType(to)
	if err != nil {
		return err
	}
	f.intake = switched
	f.dropQuoteLocked()
	return nil
}

// Quote prices the intake under a fresh idempotency key. On failure the remote
// error is returned as is and the flow keeps its previous state.
func (f *Flow) Quote(ctx context.Context) (shipment.PricingBreakdown, error) {
	f.mu.Lock()
	if err := f.editableLocked("QUOTE"); err != nil {
		f.mu.Unlock()
		return shipment.PricingBreakdown{}, err
	}
	key, intake, err := f.beginQuoteLocked()
	f.mu.Unlock()
	if err != nil {
		return shipment.PricingBreakdown{}, err
	}

	return f.runQuote(ctx, key, intake)
}

// QuoteIntake replaces the booking data and prices it as one operation, so no
// other call can change the intake between the two.
func (f *Flow) QuoteIntake(ctx context.Context, intake shipment.Intake) (shipment.PricingBreakdown, error) {
	f.mu.Lock()
	if err := f.editableLocked("QUOTE"); err != nil {
		f.mu.Unlock()
		return shipment.PricingBreakdown{}, err
	}
	intake.Items = slices.Clone(intake.Items)
	f.intake = intake
	f.dropQuoteLocked()
	key, priced, err := f.beginQuoteLocked()
	f.mu.Unlock()
	if err != nil {
		return shipment.PricingBreakdown{}, err
	}

	return f.runQuote(ctx, key, priced)
}

// beginQuoteLocked validates the intake and marks the flow in flight.
func (f *Flow) beginQuoteLocked() (string, shipment.Intake, error) {
	if err := f.intake.Validate(); err != nil {
		return "", shipment.Intake{}, err
	}
	f.inFlight = true
	return f.keys.NewKey(), f.intake, nil
}

// runQuote is entered with inFlight set. A new quote starts a new submission,
// so keys and orders left by an earlier failed confirm are dropped.
func (f *Flow) runQuote(ctx context.Context, key string, intake shipment.Intake) (shipment.PricingBreakdown, error) {
	pricing, err := f.desk.Quote(ctx, key, intake)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.touchLocked()

	if err != nil {
		f.logger.WarnContext(ctx, "Quote failed", "key", key, "error", err)
		return shipment.PricingBreakdown{}, err
	}

	f.quoteKey = key
	f.pricing = &pricing
	f.confirmKey = ""
	f.created = nil
	f.stage = Quoted
	f.logger.InfoContext(ctx, "Quote accepted", "key", key, "estimated_fee", pricing.EstimatedFee.String())
	return pricing, nil
}

// Confirm books and confirms the quoted order under a new idempotency key.
//
// If create succeeds and confirmOrder fails the order exists unconfirmed: a
// *errs.PartialCompletionError carrying its id and tracking code is returned
// and only RetryConfirm may continue.
func (f *Flow) Confirm(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	if err := f.admitLocked("CONFIRM"); err != nil {
		f.mu.Unlock()
		return Confirmation{}, err
	}
	if f.stage != Quoted {
		f.mu.Unlock()
		return Confirmation{}, errs.NewInvalidTransitionError(f.stage.String(), "CONFIRM", "a quote is required first")
	}
	f.confirmKey = f.keys.NewKey()
	f.inFlight = true
	f.mu.Unlock()

	return f.runConfirm(ctx)
}

// RetryConfirm repeats the last failed confirm attempt with the same key.
// After a partial completion only confirmOrder is called again. For a
// confirmed flow it returns the stored confirmation without any remote call.
func (f *Flow) RetryConfirm(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	if err := f.admitLocked("RETRY_CONFIRM"); err != nil {
		f.mu.Unlock()
		return Confirmation{}, err
	}
	if f.stage == Confirmed {
		c := f.confirmationLocked()
		f.mu.Unlock()
		return c, nil
	}
	if f.confirmKey == "" || (f.stage != Quoted && f.stage != PartiallyConfirmed) {
		f.mu.Unlock()
		return Confirmation{}, errs.NewInvalidTransitionError(f.stage.String(), "RETRY_CONFIRM", "there is no failed confirm attempt")
	}
	f.inFlight = true
	f.mu.Unlock()

	return f.runConfirm(ctx)
}

// runConfirm is entered with inFlight set and the confirm key chosen.
func (f *Flow) runConfirm(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	key := f.confirmKey
	intake := f.intake
	created := f.created
	f.mu.Unlock()

	var err error
	if created == nil {
		var order ports.CreatedOrder
		order, err = f.desk.Create(ctx, key, intake)
		if err != nil {
			f.finishConfirm(nil, Quoted)
			f.logger.WarnContext(ctx, "Create failed", "key", key, "error", err)
			return Confirmation{}, err
		}
		created = &order
		f.logger.InfoContext(ctx, "Order created", "key", key, "order_id", order.OrderID)
	}

	if err = f.desk.ConfirmOrder(ctx, key, created.OrderID); err != nil {
		f.finishConfirm(created, PartiallyConfirmed)
		f.logger.ErrorContext(ctx, "Order created but not confirmed",
			"key", key, "order_id", created.OrderID, "tracking_code", created.TrackingCode, "error", err)
		return Confirmation{}, errs.NewPartialCompletionError(created.OrderID, created.TrackingCode, err)
	}

	c := f.finishConfirm(created, Confirmed)
	f.logger.InfoContext(ctx, "Order confirmed", "order_id", created.OrderID, "tracking_code", created.TrackingCode)
	return c, nil
}

func (f *Flow) finishConfirm(created *ports.CreatedOrder, stage Stage) Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inFlight = false
	f.touchLocked()
	f.created = created
	f.stage = stage
	return f.confirmationLocked()
}

// Attach registers a transient client-side resource, such as an uploaded
// photo handle, to be released on Detach or Reset.
func (f *Flow) Attach(c io.Closer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachments = append(f.attachments, c)
}

// Detach releases and forgets one attachment.
func (f *Flow) Detach(c io.Closer) error {
	f.mu.Lock()
	i := slices.Index(f.attachments, c)
	if i < 0 {
		f.mu.Unlock()
		return nil
	}
	f.attachments = slices.Delete(f.attachments, i, i+1)
	f.mu.Unlock()

	return c.Close()
}

// Reset abandons the flow: pending keys are invalidated, attachments are
// released and the intake is cleared. The order desk is not contacted.
func (f *Flow) Reset() error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return errs.ErrOperationInFlight
	}
	attachments := f.attachments
	stage := f.stage

	f.attachments = nil
	f.intake = shipment.Intake{}
	f.stage = Drafting
	f.pricing = nil
	f.quoteKey = ""
	f.confirmKey = ""
	f.created = nil
	f.touchLocked()
	f.mu.Unlock()

	if stage == PartiallyConfirmed {
		f.logger.Warn("Flow reset with an unconfirmed order")
	}

	errList := make([]error, 0, len(attachments))
	for _, c := range attachments {
		if err := c.Close(); err != nil {
			errList = append(errList, fmt.Errorf("release attachment: %w", err))
		}
	}
	return errors.Join(errList...)
}

// IdleSince reports when the flow last changed, and whether a call is running.
func (f *Flow) IdleSince() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive, f.inFlight
}

func (f *Flow) admitLocked(op string) error {
	if f.inFlight {
		f.logger.Debug("Call dropped while another is in flight", "operation", op)
		return errs.ErrOperationInFlight
	}
	return nil
}

// editableLocked allows intake changes and quoting only before an order exists.
func (f *Flow) editableLocked(op string) error {
	if err := f.admitLocked(op); err != nil {
		return err
	}
	if f.stage == PartiallyConfirmed || f.stage == Confirmed {
		return errs.NewInvalidTransitionError(f.stage.String(), op, "an order already exists for this flow")
	}
	return nil
}

func (f *Flow) dropQuoteLocked() {
	f.pricing = nil
	f.quoteKey = ""
	f.confirmKey = ""
	f.stage = Drafting
	f.touchLocked()
}

func (f *Flow) confirmationLocked() Confirmation {
	c := Confirmation{
		IdempotencyKey: f.confirmKey,
		Intake:         f.intake,
	}
	c.Intake.Items = slices.Clone(f.intake.Items)
	if f.created != nil {
		c.OrderID = f.created.OrderID
		c.TrackingCode = f.created.TrackingCode
	}
	if f.pricing != nil {
		c.Pricing = *f.pricing
	}
	return c
}

func (f *Flow) touchLocked() {
	f.lastActive = f.now()
}
