package schedulerepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/schedulerepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/schedule"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// ScheduleRepositoryIntegrationTestSuite verifies schedule persistence and the
// one-schedule-per-day constraint on a PostgreSQL container.
type ScheduleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *schedulerepo.GormScheduleRepository
	tracker    *MockAggregateTracker
}

var day = time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&schedulerepo.DayScheduleDTO{}, &schedulerepo.TimeSlotDTO{}))
}

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE time_slots, day_schedules").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = schedulerepo.NewGormScheduleRepository(suite.db, suite.tracker)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()

	original := suite.buildSchedule(day)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	count, err := suite.repository.CountByDate(ctx, day.Add(13*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	stored, err := suite.repository.Get(ctx, day, nil)
	suite.Require().NoError(err)

	suite.Equal(original.ID(), stored.ID())
	suite.Equal("2023-05-01", stored.DateKey())
	if diff := cmp.Diff(flatten(original), flatten(stored)); diff != "" {
		suite.Failf("stored schedule differs", "(-want +got):\n%s", diff)
	}
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestGet_FiltersByCourier() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.buildSchedule(day)))

	courierID := int64(2)
	stored, err := suite.repository.Get(ctx, day, &courierID)
	suite.Require().NoError(err)

	suite.Require().Len(stored.Couriers(), 1)
	suite.Equal(int64(2), stored.Couriers()[0].CourierID())

	unknown := int64(99)
	stored, err = suite.repository.Get(ctx, day, &unknown)
	suite.Require().NoError(err)
	suite.True(stored.IsEmpty())
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestGet_UnscheduledDay_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), day.AddDate(0, 0, 1), nil)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAdd_SecondScheduleForDay_Conflicts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.buildSchedule(day)))

	err := suite.repository.Add(ctx, suite.buildSchedule(day))

	var exists *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &exists)
	suite.Equal("2023-05-01", exists.Key)
	suite.assertSlotCount(2)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAdd_ConcurrentRunsForOneDay_OneWins() {
	ctx := context.Background()

	const runs = 4
	results := make([]error, runs)
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.db.Transaction(func(tx *gorm.DB) error {
				repo := schedulerepo.NewGormScheduleRepository(tx, suite.tracker)
				return repo.Add(ctx, suite.buildSchedule(day))
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
			continue
		}
		suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
	}
	suite.Equal(1, won)

	count, err := suite.repository.CountByDate(ctx, day)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
	suite.assertSlotCount(2)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAdd_EmptySchedule() {
	ctx := context.Background()

	empty, err := schedule.NewDaySchedule(day, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, empty))

	stored, err := suite.repository.Get(ctx, day, nil)
	suite.Require().NoError(err)
	suite.True(stored.IsEmpty())
}

// buildSchedule runs the engine over two couriers so each gets one slot.
func (suite *ScheduleRepositoryIntegrationTestSuite) buildSchedule(date time.Time) *schedule.DaySchedule {
	hours := []kernel.TimeInterval{kernel.MustParseTimeInterval("10:00-12:00")}

	foot, err := courier.RestoreCourier(1, courier.Foot, []int{1}, hours)
	suite.Require().NoError(err)
	bike, err := courier.RestoreCourier(2, courier.Bike, []int{2}, hours)
	suite.Require().NoError(err)

	o1, err := order.RestoreOrder(1, 3, 1, hours, 100, nil, nil, date)
	suite.Require().NoError(err)
	o2, err := order.RestoreOrder(2, 4, 2, hours, 200, nil, nil, date)
	suite.Require().NoError(err)
	o3, err := order.RestoreOrder(3, 1, 2, hours, 50, nil, nil, date)
	suite.Require().NoError(err)

	result, err := services.NewAssignmentEngine().Assign(date, []*courier.Courier{foot, bike}, []*order.Order{o1, o2, o3})
	suite.Require().NoError(err)
	return result.Schedule
}

func (suite *ScheduleRepositoryIntegrationTestSuite) assertSlotCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&schedulerepo.TimeSlotDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

type flatSlot struct {
	CourierID int64
	GroupID   string
	Index     int
	Start     time.Time
	OrderIDs  []int64
	Weight    float64
	Price     float64
}

func flatten(d *schedule.DaySchedule) []flatSlot {
	var out []flatSlot
	for _, cs := range d.Couriers() {
		for _, s := range cs.Slots() {
			out = append(out, flatSlot{
				CourierID: cs.CourierID(),
				GroupID:   s.GroupID().String(),
				Index:     s.Index(),
				Start:     s.Start().UTC(),
				OrderIDs:  s.OrderIDs(),
				Weight:    s.Weight(),
				Price:     s.Price(),
			})
		}
	}
	return out
}

func TestScheduleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleRepositoryIntegrationTestSuite))
}
