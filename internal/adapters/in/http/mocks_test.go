package http_test

import (
	"context"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
)

type MockQuoteHandler struct{ mock.Mock }

func (m *MockQuoteHandler) Handle(ctx context.Context, cmd commands.QuoteShipmentCommand) (shipment.PricingBreakdown, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(shipment.PricingBreakdown), args.Error(1)
}

type MockConfirmHandler struct{ mock.Mock }

func (m *MockConfirmHandler) Handle(ctx context.Context, cmd commands.ConfirmShipmentCommand) (*shipment.Shipment, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockResetHandler struct{ mock.Mock }

func (m *MockResetHandler) Handle(ctx context.Context, cmd commands.ResetFlowCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockSwitchServiceTypeHandler struct{ mock.Mock }

func (m *MockSwitchServiceTypeHandler) Handle(ctx context.Context, cmd commands.SwitchServiceTypeCommand) (orderflow.State, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(orderflow.State), args.Error(1)
}

type MockAdvanceHandler struct{ mock.Mock }

func (m *MockAdvanceHandler) Handle(ctx context.Context, cmd commands.AdvanceShipmentCommand) (*shipment.Shipment, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockGetShipmentHandler struct{ mock.Mock }

func (m *MockGetShipmentHandler) Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.GetShipmentQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetShipmentQueryResponse), args.Error(1)
}

type MockListShipmentsHandler struct{ mock.Mock }

func (m *MockListShipmentsHandler) Handle(ctx context.Context, query queries.ListShipmentsByStatusQuery) ([]queries.ShipmentSummary, error) {
	args := m.Called(ctx, query)
	list, _ := args.Get(0).([]queries.ShipmentSummary)
	return list, args.Error(1)
}

type MockFlowLookup struct{ mock.Mock }

func (m *MockFlowLookup) Lookup(session string) (*orderflow.Flow, bool) {
	args := m.Called(session)
	f, _ := args.Get(0).(*orderflow.Flow)
	return f, args.Bool(1)
}
