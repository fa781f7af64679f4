package shipment_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func testParty(name string) shipment.Party {
	return shipment.Party{
		Name:     name,
		Phone:    "0901234567",
		Address:  "12 Harbour Road",
		Province: shipment.Region{Code: "79", Name: "Ho Chi Minh"},
		Ward:     shipment.Region{Code: "26734", Name: "Ben Nghe"},
	}
}

func testStandardItem(t *testing.T, l, w, h, grams float64) shipment.Item {
	t.Helper()
	dims, err := kernel.NewDimensions(l, w, h)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(grams)
	require.NoError(t, err)

	item, err := shipment.NewItem("books", shipment.Standard, weight, dims, shipment.NoSize, "documents", 250000)
	require.NoError(t, err)
	return item
}

func testIntake(t *testing.T) shipment.Intake {
	t.Helper()
	return shipment.Intake{
		Sender:           testParty("Sender"),
		Receiver:         testParty("Receiver"),
		ServiceType:      shipment.Standard,
		Items:            []shipment.Item{testStandardItem(t, 10, 10, 15, 1000)},
		DeclaredValue:    250000,
		Category:         "documents",
		PickupDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PickupSlot:       "08:00-12:00",
		InspectionPolicy: shipment.InspectionAllowed,
		PaymentMethod:    shipment.PaymentCash,
		Payer:            shipment.PayerSender,
	}
}

func testFee(t *testing.T, amount int64) kernel.Fee {
	t.Helper()
	f, err := kernel.NewFee(amount)
	require.NoError(t, err)
	return f
}

func testShipment(t *testing.T, estimated int64) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		"ORD-1001",
		"TRK-1001",
		"1767225600000-key",
		testIntake(t),
		shipment.PricingBreakdown{EstimatedFee: testFee(t, estimated), BasePrice: estimated},
	)
	require.NoError(t, err)
	return s
}

// reconciliation builds what the pricing engine would have produced.
func reconciliation(t *testing.T, estimated, actual int64) *shipment.Reconciliation {
	t.Helper()
	dims, err := kernel.NewDimensions(10, 10, 15)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1000)
	require.NoError(t, err)

	return &shipment.Reconciliation{
		Measurement:     shipment.Measurement{Weight: weight, Dimensions: dims},
		Scale:           float64(actual) / float64(estimated),
		ActualFee:       testFee(t, actual),
		PriceDifference: testFee(t, actual-estimated),
	}
}

func flags(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func advance(t *testing.T, s *shipment.Shipment, step shipment.Step, in shipment.StepInput) shipment.Decision {
	t.Helper()
	d, err := s.PlanStep(step, in)
	require.NoError(t, err)
	require.NoError(t, s.Apply(d))
	return d
}
