package queries_test

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, error) {
	return postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
}

func newTestShipment(t require.TestingT, orderID, receiver string, fee int64) *shipment.Shipment {
	dims, err := kernel.NewDimensions(10, 10, 15)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1000)
	require.NoError(t, err)
	item, err := shipment.NewItem("books", shipment.Standard, weight, dims, shipment.NoSize, "books", 100000)
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

	estimated, err := kernel.NewFee(fee)
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), orderID, "TRK-"+orderID, "key-"+orderID,
		shipment.Intake{
			Sender:           party("Sender"),
			Receiver:         party(receiver),
			ServiceType:      shipment.Standard,
			Items:            []shipment.Item{item},
			DeclaredValue:    100000,
			Category:         "books",
			PickupDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			PickupSlot:       "08:00-12:00",
			InspectionPolicy: shipment.InspectionAllowed,
			PaymentMethod:    shipment.PaymentCash,
			Payer:            shipment.PayerSender,
		},
		shipment.PricingBreakdown{EstimatedFee: estimated},
	)
	require.NoError(t, err)
	return s
}
