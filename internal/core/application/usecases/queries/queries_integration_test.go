package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/schedulerepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var day = time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)

// QueryHandlersTestSuite runs every read model against a migrated PostgreSQL.
type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE time_slots, day_schedules, orders, couriers RESTART IDENTITY CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) addCourier(t courier.Type, regions []int, hours ...string) *courier.Courier {
	ivs, err := kernel.ParseTimeIntervals(hours)
	suite.Require().NoError(err)
	c, err := courier.NewCourier(t, regions, ivs)
	suite.Require().NoError(err)

	repo := courierrepo.NewGormCourierRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.AddAll(context.Background(), []*courier.Courier{c}))
	return c
}

func (suite *QueryHandlersTestSuite) addOrder(weight float64, region int, cost float64, hours ...string) *order.Order {
	ivs, err := kernel.ParseTimeIntervals(hours)
	suite.Require().NoError(err)
	o, err := order.NewOrder(weight, region, ivs, cost, day.Add(9*time.Hour))
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.AddAll(context.Background(), []*order.Order{o}))
	return o
}

func (suite *QueryHandlersTestSuite) complete(o *order.Order, courierID int64, at time.Time) {
	suite.Require().NoError(o.Complete(courierID, at))
	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.UpdateAll(context.Background(), []*order.Order{o}))
}

func (suite *QueryHandlersTestSuite) TestGetCourier() {
	c := suite.addCourier(courier.Bike, []int{4, 2}, "09:00-11:00", "18:00-20:00")
	query, err := queries.NewGetCourierQuery(c.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetCourierQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.CourierView{
		ID:           c.ID(),
		Type:         "BIKE",
		Regions:      []int{4, 2},
		WorkingHours: []string{"09:00-11:00", "18:00-20:00"},
	}, view)
}

func (suite *QueryHandlersTestSuite) TestGetCourier_NotFound() {
	query, err := queries.NewGetCourierQuery(404)
	suite.Require().NoError(err)

	_, err = queries.NewGetCourierQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetCouriers_Pages() {
	for range 3 {
		suite.addCourier(courier.Foot, []int{1}, "10:00-12:00")
	}
	handler := queries.NewGetCouriersQueryHandler(suite.db)

	query, err := queries.NewGetCouriersQuery(1, 1)
	suite.Require().NoError(err)
	page, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(1, page.Offset)
	suite.Equal(1, page.Limit)
	suite.Require().Len(page.Couriers, 1)
	suite.Equal(int64(2), page.Couriers[0].ID)

	query, err = queries.NewGetCouriersQuery(0, 10)
	suite.Require().NoError(err)
	page, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(page.Couriers, 3)

	query, err = queries.NewGetCouriersQuery(10, 10)
	suite.Require().NoError(err)
	page, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(page.Couriers)
	suite.Empty(page.Couriers)
}

func (suite *QueryHandlersTestSuite) TestGetOrder() {
	c := suite.addCourier(courier.Foot, []int{1}, "10:00-12:00")
	o := suite.addOrder(2.5, 1, 300, "10:00-12:00")
	at := day.Add(11 * time.Hour)
	suite.complete(o, c.ID(), at)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.InDelta(2.5, view.Weight, 1e-9)
	suite.Equal(1, view.Region)
	suite.Equal([]string{"10:00-12:00"}, view.DeliveryHours)
	suite.InDelta(300.0, view.Cost, 1e-9)
	suite.Require().NotNil(view.CompletedTime)
	suite.True(at.Equal(*view.CompletedTime))
}

func (suite *QueryHandlersTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(1)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetOrders() {
	first := suite.addOrder(1, 1, 10, "10:00-11:00")
	suite.addOrder(2, 2, 20, "11:00-12:00")

	query, err := queries.NewGetOrdersQuery(0, 1)
	suite.Require().NoError(err)
	orders, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(first.ID(), orders[0].ID)
	suite.Nil(orders[0].CompletedTime)
}

func (suite *QueryHandlersTestSuite) TestGetCourierMetaInfo() {
	c := suite.addCourier(courier.Foot, []int{1}, "10:00-12:00")
	inside := []*order.Order{
		suite.addOrder(1, 1, 100, "10:00-12:00"),
		suite.addOrder(1, 1, 200, "10:00-12:00"),
	}
	outside := suite.addOrder(1, 1, 1000, "10:00-12:00")
	suite.complete(inside[0], c.ID(), day.Add(10*time.Hour))
	suite.complete(inside[1], c.ID(), day.Add(23*time.Hour+59*time.Minute))
	suite.complete(outside, c.ID(), day.AddDate(0, 0, 1))

	query, err := queries.NewGetCourierMetaInfoQuery(c.ID(), day, day.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	info, err := queries.NewGetCourierMetaInfoQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(c.ID(), info.ID)
	suite.Equal("FOOT", info.Type)
	suite.Require().NotNil(info.Earnings)
	suite.Require().NotNil(info.Rating)
	suite.InDelta(600.0, *info.Earnings, 1e-9)
	suite.InDelta(0.25, *info.Rating, 1e-9)
}

func (suite *QueryHandlersTestSuite) TestGetCourierMetaInfo_NothingCompleted() {
	c := suite.addCourier(courier.Auto, []int{1}, "10:00-12:00")
	suite.addOrder(1, 1, 100, "10:00-12:00")

	query, err := queries.NewGetCourierMetaInfoQuery(c.ID(), day, day.AddDate(0, 0, 7))
	suite.Require().NoError(err)
	info, err := queries.NewGetCourierMetaInfoQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Nil(info.Earnings)
	suite.Nil(info.Rating)
	suite.Equal("AUTO", info.Type)
}

func (suite *QueryHandlersTestSuite) TestGetCourierMetaInfo_UnknownCourier() {
	query, err := queries.NewGetCourierMetaInfoQuery(77, day, day.AddDate(0, 0, 1))
	suite.Require().NoError(err)

	_, err = queries.NewGetCourierMetaInfoQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// seedSchedule stores the run for day: courier 1 (FOOT, region 1) gets orders
// 1 and 2 in its 10:00 slot, courier 2 (BIKE, region 2) gets order 3 at 12:00.
func (suite *QueryHandlersTestSuite) seedSchedule() {
	ctx := context.Background()
	couriers := []*courier.Courier{
		suite.addCourier(courier.Foot, []int{1}, "10:00-14:00"),
		suite.addCourier(courier.Bike, []int{2}, "12:00-13:00"),
	}
	orders := []*order.Order{
		suite.addOrder(6, 1, 100, "10:00-11:00"),
		suite.addOrder(3, 1, 50, "10:00-11:00"),
		suite.addOrder(4, 2, 70, "12:00-12:30"),
	}

	result, err := services.NewAssignmentEngine().Assign(day, couriers, orders)
	suite.Require().NoError(err)
	suite.Require().Empty(result.Unassigned)

	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, noopTracker{}).UpdateAll(ctx, result.Assigned))
	suite.Require().NoError(schedulerepo.NewGormScheduleRepository(suite.db, noopTracker{}).Add(ctx, result.Schedule))
}

func (suite *QueryHandlersTestSuite) TestGetAssignments() {
	suite.seedSchedule()

	query, err := queries.NewGetAssignmentsQuery(day.Add(15*time.Hour), nil)
	suite.Require().NoError(err)
	view, err := queries.NewGetAssignmentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(day.Equal(view.Date))
	suite.Require().Len(view.Couriers, 2)

	first := view.Couriers[0]
	suite.Equal(int64(1), first.CourierID)
	suite.Require().Len(first.Groups, 1)
	suite.True(day.Add(10 * time.Hour).Equal(first.Groups[0].StartsAt))
	suite.Equal([]int64{1, 2}, orderIDs(first.Groups[0]))
	suite.InDelta(9.0, first.Groups[0].Weight, 1e-9)
	suite.InDelta(100+50*0.8, first.Groups[0].Price, 1e-9)

	second := view.Couriers[1]
	suite.Equal(int64(2), second.CourierID)
	suite.Require().Len(second.Groups, 1)
	suite.Equal([]int64{3}, orderIDs(second.Groups[0]))
	suite.NotEqual(first.Groups[0].GroupID, second.Groups[0].GroupID)
	suite.Equal([]string{"12:00-12:30"}, second.Groups[0].Orders[0].DeliveryHours)
}

func (suite *QueryHandlersTestSuite) TestGetAssignments_CourierFilter() {
	suite.seedSchedule()
	courierID := int64(2)

	query, err := queries.NewGetAssignmentsQuery(day, &courierID)
	suite.Require().NoError(err)
	view, err := queries.NewGetAssignmentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(view.Couriers, 1)
	suite.Equal(int64(2), view.Couriers[0].CourierID)
}

func (suite *QueryHandlersTestSuite) TestGetAssignments_NoSchedule() {
	suite.seedSchedule()

	query, err := queries.NewGetAssignmentsQuery(day.AddDate(0, 0, 1), nil)
	suite.Require().NoError(err)
	view, err := queries.NewGetAssignmentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(view.Couriers)
	suite.Empty(view.Couriers)
}

func (suite *QueryHandlersTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.addCourier(courier.Foot, []int{1}, "10:00-12:00")
	query, err := queries.NewGetCouriersQuery(0, 10)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = queries.NewGetCouriersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().Error(err)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}

func orderIDs(group queries.OrderGroupView) []int64 {
	ids := make([]int64, len(group.Orders))
	for i, o := range group.Orders {
		ids[i] = o.ID
	}
	return ids
}

// noopTracker satisfies the repositories' tracker for seeding.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ any, _ any) {}
