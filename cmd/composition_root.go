package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapi "parcel/internal/adapters/in/http"
	"parcel/internal/adapters/out/kafka"
	"parcel/internal/adapters/out/orderdesk"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/redislock"
	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/ports"
	"parcel/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// orderDesk is what both desk adapters provide.
type orderDesk interface {
	ports.OrderDesk
	ports.StatusUpdater
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	desk       orderDesk
	inFlight   ports.InFlightGuard
	publisher  *kafka.Publisher
	redis      *redis.Client
	flows      *orderflow.Registry
	logger     *slog.Logger
}

// NewCompositionRoot builds the adapters named by cfg. Unset order desk, Redis
// and Kafka settings fall back to the in-memory desk, an in-process guard
// and no event relay.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	if cfg.OrderDeskURL == "" {
		logger.Warn("ORDER_DESK_URL is not set, using the in-memory order desk")
		c.desk = orderdesk.NewMemoryDesk()
	} else {
		client, err := orderdesk.NewClient(orderdesk.ClientConfig{
			BaseURL: cfg.OrderDeskURL,
			APIKey:  cfg.OrderDeskAPIKey,
			Timeout: cfg.OrderDeskTimeout,
		}, nil, logger)
		if err != nil {
			return nil, fmt.Errorf("order desk: %w", err)
		}
		c.desk = client
	}

	if cfg.RedisAddr == "" {
		c.inFlight = redislock.NewMemoryGuard()
	} else {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := c.redis.Ping(ctx).Err(); err != nil {
			_ = c.redis.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		c.inFlight = redislock.NewGuard(c.redis, "parcel:inflight:", cfg.InFlightTTL, logger)
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.Config{
			Brokers:     cfg.KafkaBrokers,
			TopicPrefix: cfg.KafkaTopicPrefix,
		}, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("kafka: %w", err), c.Close())
		}
		c.publisher = publisher
	}

	c.flows = orderflow.NewRegistry(c.desk, orderflow.NewTimeRandomKeys(), logger)
	return c, nil
}

// Close releases the broker and Redis connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.publisher != nil {
		errList = append(errList, c.publisher.Close())
	}
	if c.redis != nil {
		errList = append(errList, c.redis.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateQuoteShipmentCommandHandler() commands.QuoteShipmentCommandHandler {
	return commands.NewQuoteShipmentCommandHandler(c.flows)
}

func (c *CompositionRoot) CreateSwitchServiceTypeCommandHandler() commands.SwitchServiceTypeCommandHandler {
	return commands.NewSwitchServiceTypeCommandHandler(c.flows)
}

func (c *CompositionRoot) CreateConfirmShipmentCommandHandler() commands.ConfirmShipmentCommandHandler {
	return commands.NewConfirmShipmentCommandHandler(c.flows, c.shipmentUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateResetFlowCommandHandler() commands.ResetFlowCommandHandler {
	return commands.NewResetFlowCommandHandler(c.flows)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	return commands.NewAdvanceShipmentCommandHandler(c.shipmentUoWFactory(), c.inFlight, c.desk, c.logger)
}

func (c *CompositionRoot) CreateExpireIdleFlowsCommandHandler() commands.ExpireIdleFlowsCommandHandler {
	return commands.NewExpireIdleFlowsCommandHandler(c.flows)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsByStatusQueryHandler() queries.ListShipmentsByStatusQueryHandler {
	return queries.NewListShipmentsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.Handlers{
		Quote:             c.CreateQuoteShipmentCommandHandler(),
		Confirm:           c.CreateConfirmShipmentCommandHandler(),
		Reset:             c.CreateResetFlowCommandHandler(),
		SwitchServiceType: c.CreateSwitchServiceTypeCommandHandler(),
		Advance:           c.CreateAdvanceShipmentCommandHandler(),
		GetShipment:       c.CreateGetShipmentQueryHandler(),
		ListShipments:     c.CreateListShipmentsByStatusQueryHandler(),
		Flows:             c.flows,
	}, c.logger)
}

// CreateJobManager leaves the relay out when no broker is configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var relay jobs.RelayOutboxHandler
	if c.publisher != nil {
		relay = c.CreateRelayOutboxCommandHandler()
	} else {
		c.logger.Warn("KAFKA_BROKERS is not set, shipment events stay in the outbox")
	}
	return jobs.NewJobManager(relay, c.CreateExpireIdleFlowsCommandHandler(), c.cfg.FlowTTL, c.cfg.Schedules, c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
