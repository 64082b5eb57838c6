package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateCouriers handles POST /couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	var req CreateCourierRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]commands.CourierData, 0, len(req.Couriers))
	for _, dto := range req.Couriers {
		items = append(items, commands.CourierData{
			Type:         dto.CourierType,
			Regions:      dto.Regions,
			WorkingHours: dto.WorkingHours,
		})
	}

	cmd, err := commands.NewCreateCouriersCommand(items)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := CreateCouriersResponse{Couriers: make([]CourierDto, 0, len(created))}
	for _, cr := range created {
		resp.Couriers = append(resp.Couriers, courierDtoFromModel(cr))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCouriers handles GET /couriers?offset=&limit=.
func (s *Server) GetCouriers(c echo.Context) error {
	offset, err := queryInt(c, "offset", queries.DefaultOffset)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", queries.DefaultLimit)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCouriersQuery(offset, limit)
	if err != nil {
		return err
	}

	page, err := s.handlers.GetCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := GetCouriersResponse{
		Couriers: make([]CourierDto, 0, len(page.Couriers)),
		Offset:   page.Offset,
		Limit:    page.Limit,
	}
	for _, v := range page.Couriers {
		resp.Couriers = append(resp.Couriers, courierDtoFromView(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCourier handles GET /couriers/{courier_id}.
func (s *Server) GetCourier(c echo.Context) error {
	id, err := pathInt64(c, "courier_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courierDtoFromView(view))
}

// GetCourierMetaInfo handles GET /couriers/meta-info/{courier_id}. The period
// runs from start_date inclusive to end_date exclusive.
func (s *Server) GetCourierMetaInfo(c echo.Context) error {
	id, err := pathInt64(c, "courier_id")
	if err != nil {
		return err
	}
	start, err := queryDate(c, "start_date", true, s.location)
	if err != nil {
		return err
	}
	end, err := queryDate(c, "end_date", true, s.location)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierMetaInfoQuery(id, start, end)
	if err != nil {
		return err
	}

	info, err := s.handlers.GetCourierMetaInfo.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GetCourierMetaInfoResponse{
		CourierDto: courierDtoFromView(info.CourierView),
		Rating:     info.Rating,
		Earnings:   info.Earnings,
	})
}

// GetAssignments handles GET /couriers/assignments?date=&courier_id=. The date
// defaults to today.
func (s *Server) GetAssignments(c echo.Context) error {
	date, err := queryDate(c, "date", false, s.location)
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = s.today()
	}
	courierID, err := queryInt64(c, "courier_id")
	if err != nil {
		return err
	}

	return s.renderAssignments(c, date, courierID)
}

func (s *Server) renderAssignments(c echo.Context, date time.Time, courierID *int64) error {
	query, err := queries.NewGetAssignmentsQuery(date, courierID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, []OrderAssignResponse{assignResponseFromView(view)})
}
