package shipment

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status is the durable lifecycle state of a shipment. Names are the wire
// values exchanged with the order desk.
//
//	Pickup:    ON_THE_WAY_PICKUP ─┬─> VERIFIED_ITEM ──┬─> CONFIRMED_PRICE ─┬─> CONFIRM_PAYMENT ─┬─> PICKUP_COMPLETED
//	                              └─> ADJUST_ITEM ────┴─> ADJUSTED_PRICE ──┴─> PENDING_PAYMENT ─┘
//	Transit:   IN_ORIGIN_WAREHOUSE ─> IN_TRANSIT ─> IN_DEST_WAREHOUSE ─> OUT_FOR_DELIVERY
//	Delivery:  OUT_FOR_DELIVERY ─┬─> DELIVERED
//	                             └─> DELIVERY_FAILED ─> OUT_FOR_DELIVERY | RETURN_CREATED
//	Return:    RETURN_CREATED ─> RETURN_IN_TRANSIT ─> RETURNED_TO_ORIGIN ─┬─> RETURN_COMPLETED
//	                                                                      └─> DISPOSED
//	Issue:     (pickup, transit, return) ─> ISSUE ─> CLOSED
type Status int

const (
	Unknown Status = iota
	OnTheWayPickup
	VerifiedItem
	AdjustItem
	ConfirmedPrice
	AdjustedPrice
	PendingPayment
	ConfirmPayment
	PickupCompleted
	InOriginWarehouse
	InTransit
	InDestWarehouse
	OutForDelivery
	Delivered
	DeliveryFailed
	ReturnCreated
	ReturnInTransit
	ReturnedToOrigin
	ReturnCompleted
	Disposed
	Issue
	Closed
)

var statusNames = map[Status]string{
	OnTheWayPickup:    "ON_THE_WAY_PICKUP",
	VerifiedItem:      "VERIFIED_ITEM",
	AdjustItem:        "ADJUST_ITEM",
	ConfirmedPrice:    "CONFIRMED_PRICE",
	AdjustedPrice:     "ADJUSTED_PRICE",
	PendingPayment:    "PENDING_PAYMENT",
	ConfirmPayment:    "CONFIRM_PAYMENT",
	PickupCompleted:   "PICKUP_COMPLETED",
	InOriginWarehouse: "IN_ORIGIN_WAREHOUSE",
	InTransit:         "IN_TRANSIT",
	InDestWarehouse:   "IN_DEST_WAREHOUSE",
	OutForDelivery:    "OUT_FOR_DELIVERY",
	Delivered:         "DELIVERED",
	DeliveryFailed:    "DELIVERY_FAILED",
	ReturnCreated:     "RETURN_CREATED",
	ReturnInTransit:   "RETURN_IN_TRANSIT",
	ReturnedToOrigin:  "RETURNED_TO_ORIGIN",
	ReturnCompleted:   "RETURN_COMPLETED",
	Disposed:          "DISPOSED",
	Issue:             "ISSUE",
	Closed:            "CLOSED",
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, 0, len(statusNames))
	for s := OnTheWayPickup; s <= Closed; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is legal.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // only terminal statuses are listed
	case Delivered, ReturnCompleted, Disposed, Closed:
		return true
	default:
		return false
	}
}

// Phase groups statuses the way the back office reports on them.
type Phase string

const (
	PhasePickup   Phase = "PICKUP"
	PhaseTransit  Phase = "TRANSIT"
	PhaseDelivery Phase = "DELIVERY"
	PhaseReturn   Phase = "RETURN"
	PhaseIssue    Phase = "ISSUE"
)

func (s Status) Phase() Phase {
	switch {
	case s >= OnTheWayPickup && s <= PickupCompleted:
		return PhasePickup
	case s >= InOriginWarehouse && s <= OutForDelivery:
		return PhaseTransit
	case s == Delivered || s == DeliveryFailed:
		return PhaseDelivery
	case s >= ReturnCreated && s <= Disposed:
		return PhaseReturn
	case s == Issue || s == Closed:
		return PhaseIssue
	default:
		return ""
	}
}

// Branch tags the two members of a branching status pair. Both members share
// one stage and therefore one set of downstream transitions.
type Branch int

const (
	// Unbranched statuses are not part of a pair.
	Unbranched Branch = iota
	Verified
	NeedsAdjustment
)

func (b Branch) String() string {
	switch b {
	case Verified:
		return "VERIFIED"
	case NeedsAdjustment:
		return "NEEDS_ADJUSTMENT"
	default:
		return "UNBRANCHED"
	}
}

// stage is the position in the transition table. Branching pairs collapse
// onto one stage.
type stage int

const (
	stageNone stage = iota
	stagePickupStarted
	stageItemChecked
	stagePriceChecked
	stagePaymentHandled
	stagePickupCompleted
	stageOriginWarehouse
	stageInTransit
	stageDestWarehouse
	stageOutForDelivery
	stageDelivered
	stageDeliveryFailed
	stageReturnCreated
	stageReturnInTransit
	stageReturnedToOrigin
	stageReturnClosed
	stageIssue
	stageClosed
)

type branchedStatus struct {
	stage  stage
	branch Branch
}

var statusStages = map[Status]branchedStatus{
	OnTheWayPickup:    {stagePickupStarted, Unbranched},
	VerifiedItem:      {stageItemChecked, Verified},
	AdjustItem:        {stageItemChecked, NeedsAdjustment},
	ConfirmedPrice:    {stagePriceChecked, Verified},
	AdjustedPrice:     {stagePriceChecked, NeedsAdjustment},
	ConfirmPayment:    {stagePaymentHandled, Verified},
	PendingPayment:    {stagePaymentHandled, NeedsAdjustment},
	PickupCompleted:   {stagePickupCompleted, Unbranched},
	InOriginWarehouse: {stageOriginWarehouse, Unbranched},
	InTransit:         {stageInTransit, Unbranched},
	InDestWarehouse:   {stageDestWarehouse, Unbranched},
	OutForDelivery:    {stageOutForDelivery, Unbranched},
	Delivered:         {stageDelivered, Unbranched},
	DeliveryFailed:    {stageDeliveryFailed, Unbranched},
	ReturnCreated:     {stageReturnCreated, Unbranched},
	ReturnInTransit:   {stageReturnInTransit, Unbranched},
	ReturnedToOrigin:  {stageReturnedToOrigin, Unbranched},
	ReturnCompleted:   {stageReturnClosed, Unbranched},
	Disposed:          {stageReturnClosed, Unbranched},
	Issue:             {stageIssue, Unbranched},
	Closed:            {stageClosed, Unbranched},
}

// Branch returns Verified or NeedsAdjustment for members of a branching pair.
func (s Status) Branch() Branch {
	return statusStages[s].branch
}

// Counterpart returns the other member of a branching pair, or Unknown.
func (s Status) Counterpart() Status {
	bs, ok := statusStages[s]
	if !ok || bs.branch == Unbranched {
		return Unknown
	}
	for other, obs := range statusStages {
		if other != s && obs.stage == bs.stage {
			return other
		}
	}
	return Unknown
}

func (s Status) stage() stage {
	return statusStages[s].stage
}
