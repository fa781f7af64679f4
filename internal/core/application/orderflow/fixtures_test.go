package orderflow_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderDesk struct{ mock.Mock }

func (m *MockOrderDesk) Quote(ctx context.Context, key string, in shipment.Intake) (shipment.PricingBreakdown, error) {
	args := m.Called(ctx, key, in)
	return args.Get(0).(shipment.PricingBreakdown), args.Error(1)
}

func (m *MockOrderDesk) Create(ctx context.Context, key string, in shipment.Intake) (ports.CreatedOrder, error) {
	args := m.Called(ctx, key, in)
	return args.Get(0).(ports.CreatedOrder), args.Error(1)
}

func (m *MockOrderDesk) ConfirmOrder(ctx context.Context, key, orderID string) error {
	args := m.Called(ctx, key, orderID)
	return args.Error(0)
}

// sequentialKeys hands out key-1, key-2, ...
type sequentialKeys struct{ n atomic.Int64 }

func (k *sequentialKeys) NewKey() string {
	return fmt.Sprintf("key-%d", k.n.Add(1))
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var _ io.Closer = closerFunc(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIntake(t *testing.T) shipment.Intake {
	t.Helper()
	dims, err := kernel.NewDimensions(20, 10, 10)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1500)
	require.NoError(t, err)
	item, err := shipment.NewItem("shoes", shipment.Standard, weight, dims, shipment.NoSize, "fashion", 400000)
	require.NoError(t, err)

	party := func(name string) shipment.Party {
		return shipment.Party{
			Name:     name,
			Phone:    "0912345678",
			Address:  "5 Le Loi",
			Province: shipment.Region{Code: "01", Name: "Ha Noi"},
			Ward:     shipment.Region{Code: "00004", Name: "Hang Bac"},
		}
	}

	return shipment.Intake{
		Sender:           party("Sender"),
		Receiver:         party("Receiver"),
		ServiceType:      shipment.Standard,
		Items:            []shipment.Item{item},
		DeclaredValue:    400000,
		Category:         "fashion",
		PickupDate:       time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		PickupSlot:       "13:00-17:00",
		InspectionPolicy: shipment.InspectionAllowed,
		PaymentMethod:    shipment.PaymentCash,
		Payer:            shipment.PayerReceiver,
	}
}

func testPricing(t *testing.T, fee int64) shipment.PricingBreakdown {
	t.Helper()
	f, err := kernel.NewFee(fee)
	require.NoError(t, err)
	return shipment.PricingBreakdown{EstimatedFee: f, BasePrice: fee, RouteType: "INTRA_REGION"}
}
