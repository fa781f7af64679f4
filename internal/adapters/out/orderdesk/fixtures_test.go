package orderdesk_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testItem(t *testing.T, grams float64, st shipment.ServiceType) shipment.Item {
	t.Helper()

	dims := kernel.Dimensions{}
	size := shipment.SizeM
	if st == shipment.Standard {
		var err error
		dims, err = kernel.NewDimensions(10, 10, 15)
		require.NoError(t, err)
		size = shipment.NoSize
	}
	weight, err := kernel.NewWeight(grams)
	require.NoError(t, err)

	item, err := shipment.NewItem("books", st, weight, dims, size, "books", 100000)
	require.NoError(t, err)
	return item
}

func testIntake(t *testing.T, grams float64, senderProvince, receiverProvince string) shipment.Intake {
	t.Helper()

	party := func(name, province string) shipment.Party {
		return shipment.Party{
			Name:     name,
			Phone:    "0901234567",
			Address:  "12 Harbour Road",
			Province: shipment.Region{Code: province, Name: "Province " + province},
			Ward:     shipment.Region{Code: "00001", Name: "Ward"},
		}
	}

	return shipment.Intake{
		Sender:           party("Sender", senderProvince),
		Receiver:         party("Receiver", receiverProvince),
		ServiceType:      shipment.Standard,
		Items:            []shipment.Item{testItem(t, grams, shipment.Standard)},
		DeclaredValue:    100000,
		Category:         "books",
		PickupDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PickupSlot:       "08:00-12:00",
		InspectionPolicy: shipment.InspectionAllowed,
		PaymentMethod:    shipment.PaymentCash,
		Payer:            shipment.PayerSender,
	}
}
