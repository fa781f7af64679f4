package orderflow_test

import (
	"errors"
	"testing"
	"time"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFlow(t *testing.T, desk *MockOrderDesk) *orderflow.Flow {
	t.Helper()
	f := orderflow.NewFlow("session-1", desk, &sequentialKeys{}, discardLogger())
	require.NoError(t, f.SetIntake(testIntake(t)))
	return f
}

func TestFlow_QuoteThenConfirm(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	pricing := testPricing(t, 30000)
	order := ports.CreatedOrder{OrderID: "ORD-1", TrackingCode: "TRK-1"}

	mock.InOrder(
		desk.On("Quote", mock.Anything, "key-1", mock.Anything).Return(pricing, nil).Once(),
		desk.On("Create", mock.Anything, "key-2", mock.Anything).Return(order, nil).Once(),
		desk.On("ConfirmOrder", mock.Anything, "key-2", "ORD-1").Return(nil).Once(),
	)

	f := newFlow(t, desk)

	got, err := f.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing, got)
	assert.Equal(t, orderflow.Quoted, f.State().Stage)
	assert.Equal(t, "key-1", f.State().QuoteKey)

	c, err := f.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", c.OrderID)
	assert.Equal(t, "TRK-1", c.TrackingCode)
	assert.Equal(t, "key-2", c.IdempotencyKey)
	assert.Equal(t, pricing, c.Pricing)
	assert.Equal(t, orderflow.Confirmed, f.State().Stage)

	desk.AssertExpectations(t)
}

func TestFlow_QuoteRejectsInvalidIntakeLocally(t *testing.T) {
	desk := new(MockOrderDesk)
	f := orderflow.NewFlow("session-1", desk, &sequentialKeys{}, discardLogger())

	_, err := f.Quote(t.Context())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	desk.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlow_QuoteFailureLeavesStateUntouched(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	pricing := testPricing(t, 30000)
	remoteErr := errs.NewRemoteValidationError("quote", "receiver ward is not served", map[string]string{"receiver.ward": "unsupported"})

	mock.InOrder(
		desk.On("Quote", mock.Anything, "key-1", mock.Anything).Return(pricing, nil).Once(),
		desk.On("Quote", mock.Anything, "key-2", mock.Anything).Return(shipment.PricingBreakdown{}, remoteErr).Once(),
	)

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)
	before := f.State()

	_, err = f.Quote(ctx)
	require.ErrorIs(t, err, errs.ErrRemoteValidation)
	var rv *errs.RemoteValidationError
	require.ErrorAs(t, err, &rv)
	assert.Same(t, remoteErr, rv)

	after := f.State()
	assert.Equal(t, before.Stage, after.Stage)
	assert.Equal(t, before.QuoteKey, after.QuoteKey)
	assert.Equal(t, before.Pricing, after.Pricing)
	desk.AssertExpectations(t)
}

func TestFlow_ConfirmRequiresQuote(t *testing.T) {
	desk := new(MockOrderDesk)
	f := newFlow(t, desk)

	_, err := f.Confirm(t.Context())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	desk.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlow_PartialCompletionThenRetry(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	order := ports.CreatedOrder{OrderID: "ORD-7", TrackingCode: "TRK-7"}
	confirmErr := errs.NewRemoteOperationError("confirmOrder", "desk unavailable")

	mock.InOrder(
		desk.On("Quote", mock.Anything, "key-1", mock.Anything).Return(testPricing(t, 30000), nil).Once(),
		desk.On("Create", mock.Anything, "key-2", mock.Anything).Return(order, nil).Once(),
		desk.On("ConfirmOrder", mock.Anything, "key-2", "ORD-7").Return(confirmErr).Once(),
		desk.On("ConfirmOrder", mock.Anything, "key-2", "ORD-7").Return(nil).Once(),
	)

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)

	_, err = f.Confirm(ctx)
	require.ErrorIs(t, err, errs.ErrPartialCompletion)
	require.ErrorIs(t, err, errs.ErrRemoteOperation)
	var partial *errs.PartialCompletionError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "ORD-7", partial.OrderID)
	assert.Equal(t, "TRK-7", partial.TrackingCode)

	st := f.State()
	assert.Equal(t, orderflow.PartiallyConfirmed, st.Stage)
	require.NotNil(t, st.Order)
	assert.Equal(t, "ORD-7", st.Order.OrderID)

	// Intake edits and requotes are closed once the order exists.
	require.ErrorIs(t, f.SetIntake(testIntake(t)), errs.ErrInvalidTransition)
	_, err = f.Quote(ctx)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	c, err := f.RetryConfirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-7", c.OrderID)
	assert.Equal(t, "key-2", c.IdempotencyKey)
	assert.Equal(t, orderflow.Confirmed, f.State().Stage)

	desk.AssertNumberOfCalls(t, "Create", 1)
	desk.AssertExpectations(t)
}

func TestFlow_RetryAfterCreateFailureReusesKey(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	order := ports.CreatedOrder{OrderID: "ORD-9", TrackingCode: "TRK-9"}

	mock.InOrder(
		desk.On("Quote", mock.Anything, "key-1", mock.Anything).Return(testPricing(t, 30000), nil).Once(),
		desk.On("Create", mock.Anything, "key-2", mock.Anything).
			Return(ports.CreatedOrder{}, errs.NewRemoteOperationError("create", "timeout")).Once(),
		desk.On("Create", mock.Anything, "key-2", mock.Anything).Return(order, nil).Once(),
		desk.On("ConfirmOrder", mock.Anything, "key-2", "ORD-9").Return(nil).Once(),
	)

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)

	_, err = f.Confirm(ctx)
	require.ErrorIs(t, err, errs.ErrRemoteOperation)
	assert.Equal(t, orderflow.Quoted, f.State().Stage)

	c, err := f.RetryConfirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-9", c.OrderID)
	desk.AssertExpectations(t)
}

func TestFlow_RetryConfirmWhenConfirmedIsLocal(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	desk.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return(testPricing(t, 30000), nil).Once()
	desk.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.CreatedOrder{OrderID: "ORD-2", TrackingCode: "TRK-2"}, nil).Once()
	desk.On("ConfirmOrder", mock.Anything, mock.Anything, "ORD-2").Return(nil).Once()

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)
	first, err := f.Confirm(ctx)
	require.NoError(t, err)

	again, err := f.RetryConfirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, again.OrderID)
	desk.AssertExpectations(t)
}

func TestFlow_RetryConfirmWithoutAttempt(t *testing.T) {
	f := newFlow(t, new(MockOrderDesk))

	_, err := f.RetryConfirm(t.Context())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestFlow_ConcurrentCallIsDropped(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	started := make(chan struct{})
	release := make(chan struct{})

	desk.On("Quote", mock.Anything, "key-1", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(testPricing(t, 30000), nil).Once()

	f := newFlow(t, desk)

	done := make(chan error, 1)
	go func() {
		_, err := f.Quote(ctx)
		done <- err
	}()
	<-started

	assert.True(t, f.State().InFlight)
	_, err := f.Quote(ctx)
	require.ErrorIs(t, err, errs.ErrOperationInFlight)
	_, err = f.Confirm(ctx)
	require.ErrorIs(t, err, errs.ErrOperationInFlight)
	require.ErrorIs(t, f.SetIntake(testIntake(t)), errs.ErrOperationInFlight)
	require.ErrorIs(t, f.Reset(), errs.ErrOperationInFlight)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("quote did not finish")
	}

	assert.False(t, f.State().InFlight)
	assert.Equal(t, orderflow.Quoted, f.State().Stage)
	desk.AssertNumberOfCalls(t, "Quote", 1)
}

func TestFlow_SwitchServiceTypeDropsQuote(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	desk.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return(testPricing(t, 30000), nil).Once()

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)

	require.NoError(t, f.SwitchServiceType(shipment.Express))

	st := f.State()
	assert.Equal(t, orderflow.Drafting, st.Stage)
	assert.Nil(t, st.Pricing)
	assert.Empty(t, st.QuoteKey)
	assert.Equal(t, shipment.Express, st.Intake.ServiceType)
	for _, it := range st.Intake.Items {
		assert.Equal(t, shipment.Express, it.ServiceType())
		assert.True(t, it.Dimensions().IsZero())
	}
	require.NoError(t, st.Intake.Validate())
}

func TestFlow_ResetReleasesAttachments(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	desk.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return(testPricing(t, 30000), nil).Once()

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)

	var closed []string
	f.Attach(closerFunc(func() error { closed = append(closed, "a"); return nil }))
	failing := closerFunc(func() error { closed = append(closed, "b"); return errors.New("gone") })
	f.Attach(failing)

	err = f.Reset()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone")
	assert.Equal(t, []string{"a", "b"}, closed)

	st := f.State()
	assert.Equal(t, orderflow.Drafting, st.Stage)
	assert.Nil(t, st.Pricing)
	assert.Empty(t, st.Intake.Items)

	// Nothing left to release.
	require.NoError(t, f.Reset())
	assert.Len(t, closed, 2)
}

func TestFlow_Detach(t *testing.T) {
	f := newFlow(t, new(MockOrderDesk))
	calls := 0
	c := &countingCloser{calls: &calls}
	f.Attach(c)

	require.NoError(t, f.Detach(c))
	require.NoError(t, f.Detach(c))
	require.NoError(t, f.Reset())
	assert.Equal(t, 1, calls)
}

type countingCloser struct{ calls *int }

func (c *countingCloser) Close() error {
	*c.calls++
	return nil
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "DRAFTING", orderflow.Drafting.String())
	assert.Equal(t, "QUOTED", orderflow.Quoted.String())
	assert.Equal(t, "PARTIALLY_CONFIRMED", orderflow.PartiallyConfirmed.String())
	assert.Equal(t, "CONFIRMED", orderflow.Confirmed.String())
	assert.Equal(t, "UNKNOWN", orderflow.Stage(42).String())
}

func TestFlow_QuoteIntake(t *testing.T) {
	t.Run("should price exactly the submitted intake", func(t *testing.T) {
		ctx := t.Context()
		desk := new(MockOrderDesk)
		started := make(chan struct{})
		release := make(chan struct{})
		submitted := testIntake(t)
		submitted.Receiver.Name = "Second Receiver"

		desk.On("Quote", mock.Anything, "key-1", mock.MatchedBy(func(in shipment.Intake) bool {
			return in.Receiver.Name == "Second Receiver"
		})).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(testPricing(t, 30000), nil).Once()

		f := newFlow(t, desk)

		done := make(chan error, 1)
		go func() {
			_, err := f.QuoteIntake(ctx, submitted)
			done <- err
		}()
		<-started

		require.ErrorIs(t, f.SetIntake(testIntake(t)), errs.ErrOperationInFlight)
		_, err := f.QuoteIntake(ctx, testIntake(t))
		require.ErrorIs(t, err, errs.ErrOperationInFlight)

		close(release)
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("quote did not finish")
		}

		st := f.State()
		assert.Equal(t, orderflow.Quoted, st.Stage)
		assert.Equal(t, "Second Receiver", st.Intake.Receiver.Name)
		desk.AssertExpectations(t)
	})

	t.Run("should keep an invalid intake off the network", func(t *testing.T) {
		desk := new(MockOrderDesk)
		f := newFlow(t, desk)
		intake := testIntake(t)
		intake.PickupSlot = ""

		_, err := f.QuoteIntake(t.Context(), intake)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.False(t, f.State().InFlight)
		assert.Equal(t, orderflow.Drafting, f.State().Stage)
		desk.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFlow_RequoteDropsFailedConfirmKey(t *testing.T) {
	ctx := t.Context()
	desk := new(MockOrderDesk)
	pricing := testPricing(t, 30000)
	order := ports.CreatedOrder{OrderID: "ORD-9", TrackingCode: "TRK-9"}

	mock.InOrder(
		desk.On("Quote", mock.Anything, "key-1", mock.Anything).Return(pricing, nil).Once(),
		desk.On("Create", mock.Anything, "key-2", mock.Anything).
			Return(ports.CreatedOrder{}, errs.NewRemoteOperationError("create", "")).Once(),
		desk.On("Quote", mock.Anything, "key-3", mock.Anything).Return(pricing, nil).Once(),
		desk.On("Create", mock.Anything, "key-4", mock.Anything).Return(order, nil).Once(),
		desk.On("ConfirmOrder", mock.Anything, "key-4", "ORD-9").Return(nil).Once(),
	)

	f := newFlow(t, desk)
	_, err := f.Quote(ctx)
	require.NoError(t, err)
	_, err = f.Confirm(ctx)
	require.ErrorIs(t, err, errs.ErrRemoteOperation)
	assert.Equal(t, "key-2", f.State().ConfirmKey)

	_, err = f.Quote(ctx)
	require.NoError(t, err)
	assert.Empty(t, f.State().ConfirmKey)
	assert.Nil(t, f.State().Order)

	_, err = f.RetryConfirm(ctx)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	c, err := f.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "key-4", c.IdempotencyKey)
	desk.AssertExpectations(t)
}
