package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite verifies courier persistence on a
// PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container         *postgres.PostgresContainer
	db                *gorm.DB
	courierRepository *courierrepo.GormCourierRepository
	tracker           *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers RESTART IDENTITY").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.courierRepository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAll_AssignsIDsInInputOrder() {
	ctx := context.Background()

	couriers := []*courier.Courier{
		suite.createTestCourier(courier.Foot, []int{1}, "10:00-14:00"),
		suite.createTestCourier(courier.Auto, []int{3, 1, 7, 9}, "08:00-12:00", "18:00-21:00"),
	}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()

	suite.Require().NoError(suite.courierRepository.AddAll(ctx, couriers))

	suite.Equal(int64(1), couriers[0].ID())
	suite.Equal(int64(2), couriers[1].ID())
	suite.assertCourierCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAll_RejectsInvalidInput() {
	testCases := []struct {
		name     string
		couriers []*courier.Courier
		target   error
	}{
		{
			name:     "unconstructed courier",
			couriers: []*courier.Courier{{}},
			target:   courier.ErrCourierIsNotConstructed,
		},
		{
			name: "already persisted courier",
			couriers: func() []*courier.Courier {
				c, err := courier.RestoreCourier(5, courier.Bike, []int{1}, []kernel.TimeInterval{kernel.MustParseTimeInterval("09:00-10:00")})
				suite.Require().NoError(err)
				return []*courier.Courier{c}
			}(),
			target: errs.ErrObjectAlreadyExists,
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.courierRepository.AddAll(ctx, tc.couriers)

			suite.Require().ErrorIs(err, tc.target)
			suite.assertCourierCount(0)
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_RoundTripsRegionsAndHoursInOrder() {
	ctx := context.Background()

	original := suite.createTestCourier(courier.Bike, []int{7, 2, 5}, "16:00-20:00", "09:30-12:00")
	suite.tracker.On("TrackAggregate", mock.Anything, original).Once()
	suite.Require().NoError(suite.courierRepository.AddAll(ctx, []*courier.Courier{original}))

	retrieved, err := suite.courierRepository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(courier.Bike, retrieved.Type())
	suite.Equal([]int{7, 2, 5}, retrieved.Regions())
	suite.Equal([]string{"16:00-20:00", "09:30-12:00"}, kernel.FormatTimeIntervals(retrieved.WorkingHours()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	retrieved, err := suite.courierRepository.Get(context.Background(), 42)

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal(int64(42), notFoundErr.ID)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetPageAndGetAll_OrderByID() {
	ctx := context.Background()

	couriers := make([]*courier.Courier, 0, 5)
	for range 5 {
		couriers = append(couriers, suite.createTestCourier(courier.Foot, []int{1}, "10:00-11:00"))
	}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(5)
	suite.Require().NoError(suite.courierRepository.AddAll(ctx, couriers))

	page, err := suite.courierRepository.GetPage(ctx, 1, 2)
	suite.Require().NoError(err)
	suite.Require().Len(page, 2)
	suite.Equal(int64(2), page[0].ID())
	suite.Equal(int64(3), page[1].ID())

	past, err := suite.courierRepository.GetPage(ctx, 10, 2)
	suite.Require().NoError(err)
	suite.Empty(past)

	all, err := suite.courierRepository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 5)
	for i, c := range all {
		suite.Equal(int64(i+1), c.ID())
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(t courier.Type, regions []int, hours ...string) *courier.Courier {
	ivs, err := kernel.ParseTimeIntervals(hours)
	suite.Require().NoError(err)
	c, err := courier.NewCourier(t, regions, ivs)
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) assertCourierCount(expected int) {
	var count int64
	err := suite.db.Model(&courierrepo.CourierDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
