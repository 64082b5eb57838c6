package cmd

import (
	"log/slog"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	promadapter "dispatch/internal/adapters/out/prometheus"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prom.Registry
	recorder   *promadapter.AssignmentRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot wires storage and metrics. The registry carries Go and
// process collectors next to the assignment metrics.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prom.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := promadapter.NewAssignmentRecorder(registry)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() commands.CreateCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCouriersCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrdersCommandHandler(f, c.now)
}

func (c *CompositionRoot) CreateCompleteOrdersCommandHandler() commands.CompleteOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersCommandHandler(f, c.recorder, c.logger)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateCouriers: c.CreateCreateCouriersCommandHandler(),
		CreateOrders:   c.CreateCreateOrdersCommandHandler(),
		CompleteOrders: c.CreateCompleteOrdersCommandHandler(),
		AssignOrders:   c.CreateAssignOrdersCommandHandler(),

		GetCourier:         queries.NewGetCourierQueryHandler(c.gormDB),
		GetCouriers:        queries.NewGetCouriersQueryHandler(c.gormDB),
		GetCourierMetaInfo: queries.NewGetCourierMetaInfoQueryHandler(c.gormDB),
		GetOrder:           queries.NewGetOrderQueryHandler(c.gormDB),
		GetOrders:          queries.NewGetOrdersQueryHandler(c.gormDB),
		GetAssignments:     queries.NewGetAssignmentsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.CreateHTTPHandlers(), c.config.TimeZone, c.now, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignOrdersCommandHandler(), jobs.Config{
		AssignmentSpec:    c.config.AssignmentCron,
		AssignmentTimeout: c.config.AssignmentTimeout,
		Location:          c.config.TimeZone,
	}, c.now, c.logger)
}

func (c *CompositionRoot) Registry() *prom.Registry {
	return c.registry
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
