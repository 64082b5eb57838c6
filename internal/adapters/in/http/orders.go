package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateOrders handles POST /orders.
func (s *Server) CreateOrders(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]commands.OrderData, 0, len(req.Orders))
	for _, dto := range req.Orders {
		items = append(items, commands.OrderData{
			Weight:        dto.Weight,
			Region:        dto.Regions,
			DeliveryHours: dto.DeliveryHours,
			Cost:          dto.Cost,
		})
	}

	cmd, err := commands.NewCreateOrdersCommand(items)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := make([]OrderDto, 0, len(created))
	for _, o := range created {
		resp = append(resp, orderDtoFromModel(o))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrders handles GET /orders?offset=&limit=.
func (s *Server) GetOrders(c echo.Context) error {
	offset, err := queryInt(c, "offset", queries.DefaultOffset)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", queries.DefaultLimit)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersQuery(offset, limit)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]OrderDto, 0, len(views))
	for _, v := range views {
		resp = append(resp, orderDtoFromView(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /orders/{order_id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathInt64(c, "order_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderDtoFromView(view))
}

// CompleteOrders handles POST /orders/complete. The batch is applied entirely
// or rejected.
func (s *Server) CompleteOrders(c echo.Context) error {
	var req CompleteOrderRequestDto
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]commands.Completion, 0, len(req.CompleteInfo))
	for _, dto := range req.CompleteInfo {
		items = append(items, commands.Completion{
			CourierID:    dto.CourierID,
			OrderID:      dto.OrderID,
			CompleteTime: dto.CompleteTime,
		})
	}

	cmd, err := commands.NewCompleteOrdersCommand(items)
	if err != nil {
		return err
	}

	completed, err := s.handlers.CompleteOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := make([]OrderDto, 0, len(completed))
	for _, o := range completed {
		resp = append(resp, orderDtoFromModel(o))
	}
	return c.JSON(http.StatusOK, resp)
}

// AssignOrders handles POST /orders/assign?date=. It schedules the day, which
// defaults to today, and answers with the stored schedule. A day without
// couriers or orders answers with an empty schedule.
func (s *Server) AssignOrders(c echo.Context) error {
	date, err := queryDate(c, "date", false, s.location)
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = s.today()
	}

	cmd, err := commands.NewAssignOrdersCommand(date)
	if err != nil {
		return err
	}

	if _, err = s.handlers.AssignOrders.Handle(c.Request().Context(), cmd); err != nil &&
		!errors.Is(err, commands.ErrNothingToSchedule) {
		return err
	}

	return s.renderAssignments(c, date, nil)
}
