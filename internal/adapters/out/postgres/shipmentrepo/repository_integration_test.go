package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"parcel/internal/adapters/out/postgres/shipmentrepo"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite verifies shipment persistence
// against a real PostgreSQL container.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.ItemDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipment_items, shipments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()
	original := suite.createTestShipment("ORD-100", 100000)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	suite.Require().NoError(suite.repository.Add(ctx, original))

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), got.ID())
	suite.Equal("ORD-100", got.OrderID())
	suite.Equal(original.TrackingCode(), got.TrackingCode())
	suite.Equal(original.IdempotencyKey(), got.IdempotencyKey())
	suite.Equal(shipment.OnTheWayPickup, got.Status())
	suite.True(original.EstimatedFee().IsEqual(got.EstimatedFee()))
	suite.False(got.ActualFee().IsKnown())
	suite.Empty(got.DomainEvents())

	in := got.Intake()
	suite.Equal(original.Intake().Sender, in.Sender)
	suite.Equal(original.Intake().Receiver, in.Receiver)
	suite.Equal(shipment.Standard, in.ServiceType)
	suite.True(original.Intake().PickupDate.Equal(in.PickupDate))
	suite.Require().Len(in.Items, 2)
	suite.Equal("books", in.Items[0].Name())
	suite.Equal("lamp", in.Items[1].Name())
	suite.InDelta(0.0015, in.Items[0].Dimensions().Volume(), 1e-12)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderID_Rejected() {
	ctx := context.Background()
	first := suite.createTestShipment("ORD-200", 100000)
	second := suite.createTestShipment("ORD-200", 100000)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()

	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Require().ErrorIs(err, shipmentrepo.ErrDuplicateOrder)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", second.ID(), second)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_PersistsStageData() {
	ctx := context.Background()
	s := suite.createTestShipment("ORD-300", 100000)
	suite.tracker.On("TrackAggregate", s.ID(), s).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	dims, err := kernel.NewDimensions(15, 20, 10)
	suite.Require().NoError(err)
	weight, err := kernel.NewWeight(1200)
	suite.Require().NoError(err)
	actual, err := kernel.NewFee(200000)
	suite.Require().NoError(err)
	diff, err := kernel.NewFee(100000)
	suite.Require().NoError(err)

	d, err := s.PlanStep(shipment.CheckItem, shipment.StepInput{
		Flags: map[string]bool{shipment.ItemSizeDiffers: true},
		Note:  "box is larger than declared",
		Reconciliation: &shipment.Reconciliation{
			Measurement:     shipment.Measurement{Weight: weight, Dimensions: dims},
			Scale:           2,
			ActualFee:       actual,
			PriceDifference: diff,
		},
	})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Apply(d))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.AdjustItem, got.Status())
	suite.True(got.Deviations().Item)
	suite.Equal("box is larger than declared", got.Note())

	r, ok := got.Reconciliation()
	suite.Require().True(ok)
	suite.InDelta(2.0, r.Scale, 1e-9)
	suite.True(actual.IsEqual(r.ActualFee))
	suite.True(diff.IsEqual(r.PriceDifference))
	suite.InDelta(1200, r.Measurement.Weight.Grams(), 1e-9)
	suite.Len(got.Intake().Items, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_UnknownShipment_NotFound() {
	s := suite.createTestShipment("ORD-400", 100000)

	err := suite.repository.Update(context.Background(), s)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByOrderID() {
	ctx := context.Background()
	s := suite.createTestShipment("ORD-500", 100000)
	suite.tracker.On("TrackAggregate", s.ID(), s).Once()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.GetByOrderID(ctx, "ORD-500")
	suite.Require().NoError(err)
	suite.True(s.IsEqual(got))

	_, err = suite.repository.GetByOrderID(ctx, "ORD-missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestRoundTrip_UnknownEstimatedFee() {
	ctx := context.Background()
	s, err := shipment.NewShipment(kernel.NewUUID(), "ORD-600", "TRK-600", "key-600",
		suite.testIntake(), shipment.PricingBreakdown{EstimatedFee: kernel.UnknownFee()})
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", s.ID(), s).Once()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.False(got.EstimatedFee().IsKnown())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment(orderID string, fee int64) *shipment.Shipment {
	estimated, err := kernel.NewFee(fee)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewUUID(), orderID, "TRK-"+orderID, "key-"+orderID,
		suite.testIntake(), shipment.PricingBreakdown{EstimatedFee: estimated, BasePrice: fee, RouteType: "INTRA_REGION"})
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) testIntake() shipment.Intake {
	item := func(name string, l, w, h, grams float64) shipment.Item {
		dims, err := kernel.NewDimensions(l, w, h)
		suite.Require().NoError(err)
		weight, err := kernel.NewWeight(grams)
		suite.Require().NoError(err)
		it, err := shipment.NewItem(name, shipment.Standard, weight, dims, shipment.NoSize, "household", 100000)
		suite.Require().NoError(err)
		return it
	}
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
		Items:            []shipment.Item{item("books", 10, 10, 15, 1000), item("lamp", 30, 20, 20, 2500)},
		DeclaredValue:    200000,
		Category:         "household",
		PickupDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PickupSlot:       "08:00-12:00",
		InspectionPolicy: shipment.InspectionAllowed,
		PaymentMethod:    shipment.PaymentCash,
		Payer:            shipment.PayerSender,
	}
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
