package orderdesk

import (
	"context"
	"fmt"
	"math"
	"sync"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// Tariff used by MemoryDesk, in the smallest currency unit.
const (
	memoryBasePrice      = 22000
	memoryInterRegionFee = 10000
	memoryExtraPerHalfKG = 2500
	memoryVolumetricDiv  = 6000.0
)

type memoryOrder struct {
	key       string
	order     ports.CreatedOrder
	confirmed bool
	statuses  []shipment.Status
}

// MemoryDesk is an in-process order desk. Create is idempotent by key, and a
// one-shot failure can be injected per operation.
type MemoryDesk struct {
	mu       sync.Mutex
	seq      int
	byKey    map[string]*memoryOrder
	byID     map[string]*memoryOrder
	failures map[string]error
}

func NewMemoryDesk() *MemoryDesk {
	return &MemoryDesk{
		byKey:    make(map[string]*memoryOrder),
		byID:     make(map[string]*memoryOrder),
		failures: make(map[string]error),
	}
}

var (
	_ ports.OrderDesk     = (*MemoryDesk)(nil)
	_ ports.StatusUpdater = (*MemoryDesk)(nil)
)

// FailNext makes the next call of op ("quote", "create", "confirmOrder" or
// "updateStatus") return err.
func (d *MemoryDesk) FailNext(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = err
}

func (d *MemoryDesk) Quote(_ context.Context, key string, intake shipment.Intake) (shipment.PricingBreakdown, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailureLocked(opQuote); err != nil {
		return shipment.PricingBreakdown{}, err
	}
	if err := checkRequest(opQuote, key, intake); err != nil {
		return shipment.PricingBreakdown{}, err
	}

	return quoteIntake(intake)
}

func (d *MemoryDesk) Create(_ context.Context, key string, intake shipment.Intake) (ports.CreatedOrder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailureLocked(opCreate); err != nil {
		return ports.CreatedOrder{}, err
	}
	if o, ok := d.byKey[key]; ok {
		return o.order, nil
	}
	if err := checkRequest(opCreate, key, intake); err != nil {
		return ports.CreatedOrder{}, err
	}

	d.seq++
	o := &memoryOrder{
		key: key,
		order: ports.CreatedOrder{
			OrderID:      fmt.Sprintf("ORD-%06d", d.seq),
			TrackingCode: fmt.Sprintf("PX%010d", d.seq),
		},
	}
	d.byKey[key] = o
	d.byID[o.order.OrderID] = o
	return o.order, nil
}

func (d *MemoryDesk) ConfirmOrder(_ context.Context, key string, orderID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailureLocked(opConfirmOrder); err != nil {
		return err
	}
	o, ok := d.byID[orderID]
	if !ok {
		return errs.NewRemoteOperationError(opConfirmOrder, fmt.Sprintf("order %s does not exist", orderID))
	}
	if o.key != key {
		return errs.NewRemoteOperationError(opConfirmOrder, "idempotency key does not match the order")
	}
	if !o.confirmed {
		o.confirmed = true
		o.statuses = append(o.statuses, shipment.OnTheWayPickup)
	}
	return nil
}

func (d *MemoryDesk) UpdateStatus(_ context.Context, orderID string, payload shipment.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.takeFailureLocked(opUpdateStatus); err != nil {
		return err
	}
	o, ok := d.byID[orderID]
	if !ok || !o.confirmed {
		return errs.NewRemoteOperationError(opUpdateStatus, fmt.Sprintf("order %s is not confirmed", orderID))
	}
	o.statuses = append(o.statuses, payload.Status)
	return nil
}

// Order returns the order booked under orderID and whether it is confirmed.
func (d *MemoryDesk) Order(orderID string) (ports.CreatedOrder, bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, ok := d.byID[orderID]
	if !ok {
		return ports.CreatedOrder{}, false, false
	}
	return o.order, o.confirmed, true
}

// Statuses lists the statuses reported for orderID, oldest first.
func (d *MemoryDesk) Statuses(orderID string) []shipment.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	o, ok := d.byID[orderID]
	if !ok {
		return nil
	}
	return append([]shipment.Status(nil), o.statuses...)
}

// Orders counts the orders created so far.
func (d *MemoryDesk) Orders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.byID)
}

func (d *MemoryDesk) takeFailureLocked(op string) error {
	err, ok := d.failures[op]
	if !ok {
		return nil
	}
	delete(d.failures, op)
	return err
}

func checkRequest(op, key string, intake shipment.Intake) error {
	if key == "" {
		return errs.NewRemoteValidationError(op, "Idempotency-Key header is required", nil)
	}
	if err := intake.Validate(); err != nil {
		return errs.NewRemoteValidationError(op, err.Error(), nil)
	}
	return nil
}

func quoteIntake(in shipment.Intake) (shipment.PricingBreakdown, error) {
	actualKG := in.DeclaredWeight().Grams() / 1000
	volumetricKG := in.DeclaredVolume() * 1e6 / memoryVolumetricDiv
	chargeable := math.Max(actualKG, volumetricKG)

	route, base := "INTRA_REGION", int64(memoryBasePrice)
	if in.Sender.Province.Code != in.Receiver.Province.Code {
		route, base = "INTER_REGION", base+memoryInterRegionFee
	}

	var extra int64
	if chargeable > 1 {
		extra = int64(math.Ceil((chargeable-1)/0.5)) * memoryExtraPerHalfKG
	}

	total, sla := base+extra, "STANDARD_3D"
	if in.ServiceType == shipment.Express {
		total, sla = int64(math.Round(float64(total)*1.5)), "EXPRESS_1D"
	}

	vehicle := "MOTORBIKE"
	if chargeable > 20 {
		vehicle = "TRUCK"
	}

	fee, err := kernel.NewFee(total)
	if err != nil {
		return shipment.PricingBreakdown{}, errs.NewRemoteOperationErrorWithCause(opQuote, "", err)
	}

	return shipment.PricingBreakdown{
		EstimatedFee:     fee,
		BasePrice:        base,
		ExtraWeightPrice: extra,
		RouteType:        route,
		VehicleType:      vehicle,
		SLAClass:         sla,
		ChargeableWeight: chargeable,
		ActualWeight:     actualKG,
		VolumetricWeight: volumetricKG,
	}, nil
}
