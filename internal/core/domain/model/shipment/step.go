package shipment

import (
	"fmt"
	"slices"
	"strings"

	"parcel/internal/core/domain/model/checklist"
	"parcel/internal/pkg/errs"
)

// Step is a staff action that tries to move a shipment forward.
type Step int

const (
	UnknownStep Step = iota
	CheckItem
	CheckPrice
	CollectPayment
	CompletePickup
	CheckInOrigin
	Dispatch
	ArriveDestination
	StartDelivery
	Deliver
	Redeliver
	CreateReturn
	ShipReturn
	ArriveOrigin
	CompleteReturn
	ReportIssue
	Close
)

var stepNames = map[Step]string{
	CheckItem:         "CHECK_ITEM",
	CheckPrice:        "CHECK_PRICE",
	CollectPayment:    "COLLECT_PAYMENT",
	CompletePickup:    "COMPLETE_PICKUP",
	CheckInOrigin:     "CHECK_IN_ORIGIN",
	Dispatch:          "DISPATCH",
	ArriveDestination: "ARRIVE_DESTINATION",
	StartDelivery:     "START_DELIVERY",
	Deliver:           "DELIVER",
	Redeliver:         "REDELIVER",
	CreateReturn:      "CREATE_RETURN",
	ShipReturn:        "SHIP_RETURN",
	ArriveOrigin:      "ARRIVE_ORIGIN",
	CompleteReturn:    "COMPLETE_RETURN",
	ReportIssue:       "REPORT_ISSUE",
	Close:             "CLOSE",
}

func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStep, errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%q is not a valid step", name))
}

func (s Step) Validate() error {
	if _, ok := stepNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

type outcome struct {
	to   Status
	gate checklist.Gate
}

// rule is one row of the transition table. A rule may have an adjusted
// outcome. The verdict's branch is always the target status's own Branch, so
// DELIVERED/DELIVERY_FAILED and RETURN_COMPLETED/DISPOSED stay Unbranched.
type rule struct {
	from     []stage
	clean    outcome
	adjusted *outcome
}

var issueStages = []stage{
	stagePickupStarted, stageItemChecked, stagePriceChecked, stagePaymentHandled, stagePickupCompleted,
	stageOriginWarehouse, stageInTransit, stageDestWarehouse, stageOutForDelivery,
	stageReturnCreated, stageReturnInTransit, stageReturnedToOrigin,
}

var rules = map[Step]rule{
	CheckItem: {
		from:     []stage{stagePickupStarted},
		clean:    outcome{VerifiedItem, checkItemGate},
		adjusted: &outcome{AdjustItem, itemDeviationGate},
	},
	CheckPrice: {
		from:     []stage{stageItemChecked},
		clean:    outcome{ConfirmedPrice, checkPriceGate},
		adjusted: &outcome{AdjustedPrice, priceAdjustmentGate},
	},
	CollectPayment: {
		from:     []stage{stagePriceChecked},
		clean:    outcome{ConfirmPayment, paymentConfirmedGate},
		adjusted: &outcome{PendingPayment, paymentPendingGate},
	},
	CompletePickup:    {from: []stage{stagePaymentHandled}, clean: outcome{PickupCompleted, completePickupGate}},
	CheckInOrigin:     {from: []stage{stagePickupCompleted}, clean: outcome{InOriginWarehouse, originCheckInGate}},
	Dispatch:          {from: []stage{stageOriginWarehouse}, clean: outcome{InTransit, dispatchGate}},
	ArriveDestination: {from: []stage{stageInTransit}, clean: outcome{InDestWarehouse, destinationCheckInGate}},
	StartDelivery:     {from: []stage{stageDestWarehouse}, clean: outcome{OutForDelivery, startDeliveryGate}},
	Deliver: {
		from:     []stage{stageOutForDelivery},
		clean:    outcome{Delivered, deliveredGate},
		adjusted: &outcome{DeliveryFailed, deliveryFailedGate},
	},
	Redeliver:    {from: []stage{stageDeliveryFailed}, clean: outcome{OutForDelivery, redeliverGate}},
	CreateReturn: {from: []stage{stageDeliveryFailed}, clean: outcome{ReturnCreated, createReturnGate}},
	ShipReturn:   {from: []stage{stageReturnCreated}, clean: outcome{ReturnInTransit, shipReturnGate}},
	ArriveOrigin: {from: []stage{stageReturnInTransit}, clean: outcome{ReturnedToOrigin, arriveOriginGate}},
	CompleteReturn: {
		from:     []stage{stageReturnedToOrigin},
		clean:    outcome{ReturnCompleted, returnCompletedGate},
		adjusted: &outcome{Disposed, disposeGate},
	},
	ReportIssue: {from: issueStages, clean: outcome{Issue, problemGate}},
	Close:       {from: []stage{stageIssue}, clean: outcome{Closed, closeGate}},
}

// Checklists returns unchecked copies of the gates a step is judged by, clean
// gate first.
func (s Step) Checklists() []checklist.Gate {
	r, ok := rules[s]
	if !ok {
		return nil
	}
	if r.adjusted == nil {
		return []checklist.Gate{r.clean.gate}
	}
	return []checklist.Gate{r.clean.gate, r.adjusted.gate}
}

// AllowedFrom reports whether the step is an edge out of status, ignoring gates.
func (s Step) AllowedFrom(status Status) bool {
	r, ok := rules[s]
	return ok && !status.IsTerminal() && slices.Contains(r.from, status.stage())
}

// StepsFrom lists the steps that leave status, in step order.
func StepsFrom(status Status) []Step {
	var out []Step
	for s := CheckItem; s <= Close; s++ {
		if s.AllowedFrom(status) {
			out = append(out, s)
		}
	}
	return out
}

// Verdict is the result of judging one step against a set of flags.
type Verdict struct {
	To     Status
	Branch Branch
	Gate   checklist.Gate
}

// Decide evaluates step from status against flags. It never mutates anything.
// The clean outcome wins when both gates are satisfied.
func Decide(from Status, step Step, flags map[string]bool) (Verdict, error) {
	if err := step.Validate(); err != nil {
		return Verdict{}, err
	}
	if from.IsTerminal() {
		return Verdict{}, errs.NewInvalidTransitionError(from.String(), step.String(), "status is terminal")
	}

	r := rules[step]
	if !slices.Contains(r.from, from.stage()) {
		return Verdict{}, errs.NewInvalidTransitionError(from.String(), step.String(), "step is not allowed from this status")
	}

	if err := rejectForeignFlags(step, r, flags); err != nil {
		return Verdict{}, err
	}

	clean := r.clean.gate.Apply(flags)
	if clean.Satisfied() {
		return Verdict{To: r.clean.to, Branch: r.clean.to.Branch(), Gate: clean}, nil
	}

	reasons := []string{clean.Describe()}
	if r.adjusted != nil {
		adjusted := r.adjusted.gate.Apply(flags)
		if adjusted.Satisfied() {
			return Verdict{To: r.adjusted.to, Branch: r.adjusted.to.Branch(), Gate: adjusted}, nil
		}
		reasons = append(reasons, adjusted.Describe())
	}

	return Verdict{}, errs.NewInvalidTransitionError(from.String(), step.String(), strings.Join(reasons, "; "))
}

func rejectForeignFlags(step Step, r rule, flags map[string]bool) error {
	var foreign []string
	for name := range flags {
		if r.clean.gate.Has(name) || (r.adjusted != nil && r.adjusted.gate.Has(name)) {
			continue
		}
		foreign = append(foreign, name)
	}
	if len(foreign) == 0 {
		return nil
	}
	slices.Sort(foreign)
	return errs.NewValueIsInvalidErrorWithCause(
		"flags",
		fmt.Errorf("%s does not check: %s", step, strings.Join(foreign, ", ")),
	)
}
