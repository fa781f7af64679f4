package orderdesk_test

import (
	"testing"

	"parcel/internal/adapters/out/orderdesk"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDesk_Quote(t *testing.T) {
	tests := []struct {
		name      string
		grams     float64
		from, to  string
		express   bool
		wantFee   int64
		wantRoute string
	}{
		{"light parcel in one region", 1000, "79", "79", false, 22000, "INTRA_REGION"},
		{"heavier parcel across regions", 2500, "79", "01", false, 39500, "INTER_REGION"},
		{"express across regions", 2500, "79", "01", true, 59250, "INTER_REGION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := orderdesk.NewMemoryDesk()
			intake := testIntake(t, tt.grams, tt.from, tt.to)
			if tt.express {
				var err error
				intake, err = intake.SwitchServiceType(shipment.Express)
				require.NoError(t, err)
			}

			pricing, err := desk.Quote(t.Context(), "key-1", intake)

			require.NoError(t, err)
			amount, known := pricing.EstimatedFee.Amount()
			require.True(t, known)
			assert.Equal(t, tt.wantFee, amount)
			assert.Equal(t, tt.wantRoute, pricing.RouteType)
		})
	}
}

func TestMemoryDesk_Quote_RejectsInvalidIntake(t *testing.T) {
	desk := orderdesk.NewMemoryDesk()

	_, err := desk.Quote(t.Context(), "key-1", shipment.Intake{})

	require.ErrorIs(t, err, errs.ErrRemoteValidation)
}

func TestMemoryDesk_CreateIsIdempotentByKey(t *testing.T) {
	desk := orderdesk.NewMemoryDesk()
	intake := testIntake(t, 1000, "79", "79")

	first, err := desk.Create(t.Context(), "key-1", intake)
	require.NoError(t, err)
	again, err := desk.Create(t.Context(), "key-1", intake)
	require.NoError(t, err)
	other, err := desk.Create(t.Context(), "key-2", intake)
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first.OrderID, other.OrderID)
	assert.Equal(t, 2, desk.Orders())
}

func TestMemoryDesk_ConfirmAndUpdateStatus(t *testing.T) {
	desk := orderdesk.NewMemoryDesk()
	order, err := desk.Create(t.Context(), "key-1", testIntake(t, 1000, "79", "79"))
	require.NoError(t, err)

	err = desk.UpdateStatus(t.Context(), order.OrderID, shipment.Payload{Status: shipment.VerifiedItem})
	require.ErrorIs(t, err, errs.ErrRemoteOperation, "unconfirmed orders take no status")

	require.ErrorIs(t, desk.ConfirmOrder(t.Context(), "key-9", order.OrderID), errs.ErrRemoteOperation)
	require.NoError(t, desk.ConfirmOrder(t.Context(), "key-1", order.OrderID))
	require.NoError(t, desk.ConfirmOrder(t.Context(), "key-1", order.OrderID))

	require.NoError(t, desk.UpdateStatus(t.Context(), order.OrderID, shipment.Payload{Status: shipment.VerifiedItem}))

	_, confirmed, ok := desk.Order(order.OrderID)
	require.True(t, ok)
	assert.True(t, confirmed)
	assert.Equal(t, []shipment.Status{shipment.OnTheWayPickup, shipment.VerifiedItem}, desk.Statuses(order.OrderID))
}

func TestMemoryDesk_FailNextIsOneShot(t *testing.T) {
	desk := orderdesk.NewMemoryDesk()
	intake := testIntake(t, 1000, "79", "79")
	desk.FailNext("create", errs.NewRemoteOperationError("create", "busy"))

	_, err := desk.Create(t.Context(), "key-1", intake)
	require.ErrorIs(t, err, errs.ErrRemoteOperation)

	_, err = desk.Create(t.Context(), "key-1", intake)
	require.NoError(t, err)
}
