package commands_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func testIntake(t *testing.T) shipment.Intake {
	t.Helper()
	dims, err := kernel.NewDimensions(10, 10, 15)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1000)
	require.NoError(t, err)
	item, err := shipment.NewItem("books", shipment.Standard, weight, dims, shipment.NoSize, "documents", 250000)
	require.NoError(t, err)

	party := func(name string) shipment.Party {
		return shipment.Party{
			Name:     name,
			Phone:    "0901234567",
			Address:  "12 Harbour Road",
			Province: shipment.Region{Code: "79", Name: "Ho Chi Minh"},
			Ward:     shipment.Region{Code: "26734", Name: "Ben Nghe"},
		}
	}

	return shipment.Intake{
		Sender:           party("Sender"),
		Receiver:         party("Receiver"),
		ServiceType:      shipment.Standard,
		Items:            []shipment.Item{item},
		DeclaredValue:    250000,
		Category:         "documents",
		PickupDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PickupSlot:       "08:00-12:00",
		InspectionPolicy: shipment.InspectionAllowed,
		PaymentMethod:    shipment.PaymentCash,
		Payer:            shipment.PayerSender,
	}
}

func testPricing(t *testing.T, fee int64) shipment.PricingBreakdown {
	t.Helper()
	f, err := kernel.NewFee(fee)
	require.NoError(t, err)
	return shipment.PricingBreakdown{EstimatedFee: f, BasePrice: fee}
}

func testShipment(t *testing.T, fee int64) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), "ORD-1", "TRK-1", "key-1", testIntake(t), testPricing(t, fee))
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func testMeasurement(t *testing.T, l, w, h, grams float64) *shipment.Measurement {
	t.Helper()
	dims, err := kernel.NewDimensions(l, w, h)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(grams)
	require.NoError(t, err)
	return &shipment.Measurement{Weight: weight, Dimensions: dims}
}
