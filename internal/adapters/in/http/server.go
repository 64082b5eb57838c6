package http

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

type CreateCouriersHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]*courier.Courier, error)
}

type CreateOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error)
}

type CompleteOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteOrdersCommand) ([]*order.Order, error)
}

type AssignOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignOrdersResult, error)
}

type GetCourierHandler interface {
	Handle(ctx context.Context, query queries.GetCourierQuery) (queries.CourierView, error)
}

type GetCouriersHandler interface {
	Handle(ctx context.Context, query queries.GetCouriersQuery) (queries.GetCouriersQueryResponse, error)
}

type GetCourierMetaInfoHandler interface {
	Handle(ctx context.Context, query queries.GetCourierMetaInfoQuery) (queries.CourierMetaInfoView, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type GetOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderView, error)
}

type GetAssignmentsHandler interface {
	Handle(ctx context.Context, query queries.GetAssignmentsQuery) (queries.AssignmentsView, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateCouriers CreateCouriersHandler
	CreateOrders   CreateOrdersHandler
	CompleteOrders CompleteOrdersHandler
	AssignOrders   AssignOrdersHandler

	// Query handlers
	GetCourier         GetCourierHandler
	GetCouriers        GetCouriersHandler
	GetCourierMetaInfo GetCourierMetaInfoHandler
	GetOrder           GetOrderHandler
	GetOrders          GetOrdersHandler
	GetAssignments     GetAssignmentsHandler
}

// Server translates HTTP requests into commands and queries and renders
// their results.
type Server struct {
	handlers Handlers
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewServer creates a server. Dates missing from a request default to the
// current day in location.
func NewServer(handlers Handlers, location *time.Location, now func() time.Time, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		location: location,
		now:      now,
		logger:   logger.With("component", "http"),
	}
}

func (s *Server) today() time.Time {
	return s.now().In(s.location)
}
