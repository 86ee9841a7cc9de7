package queries_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the repositories' tracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type GetDriverOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	handler    queries.GetDriverOrdersQueryHandler
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) SetupSuite() {
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

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetDriverOrdersQueryHandler(db)
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, tracker)
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) seedOrder(
	tenantID kernel.UUID,
	target order.Status,
	claimedBy *kernel.UUID,
) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	total, err := kernel.NewMoney(9900)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), tenantID, kernel.NewUUID(), total, order.Cash, now)
	suite.Require().NoError(err)

	if target != order.Requested {
		suite.Require().NoError(o.TransitionTo(order.Approved, order.TransitionContext{}, now))
	}
	if claimedBy != nil {
		suite.Require().NoError(o.Claim(*claimedBy, now))
	}
	for _, next := range []order.Status{order.ReadyForPickup, order.PickedUp, order.EnRoute, order.AtDoor, order.Delivered} {
		if o.Status() == target {
			break
		}
		suite.Require().NoError(o.TransitionTo(next, order.TransitionContext{}, now))
	}
	suite.Require().Equal(target, o.Status())

	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetDriverOrdersQuery(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) TestHandle_ReturnsClaimableAndOwnOrders() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	otherDriverID := kernel.NewUUID()

	claimable := suite.seedOrder(tenantID, order.Approved, nil)
	mine := suite.seedOrder(tenantID, order.Preparing, &driverID)
	suite.seedOrder(tenantID, order.Requested, nil)            // not yet approved
	suite.seedOrder(tenantID, order.Preparing, &otherDriverID) // someone else's
	suite.seedOrder(tenantID, order.Delivered, &driverID)      // finished, off the board
	suite.seedOrder(kernel.NewUUID(), order.Approved, nil)     // another tenant

	query, err := queries.NewGetDriverOrdersQuery(driverID, tenantID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	byID := make(map[string]queries.GetDriverOrdersQueryResponse, len(result))
	for _, row := range result {
		byID[row.ID.String()] = row
	}

	claimableRow, ok := byID[claimable.ID().String()]
	suite.Require().True(ok)
	suite.False(claimableRow.Mine)
	suite.Equal(order.Approved, claimableRow.Status)
	suite.Equal(order.Approved.Label(), claimableRow.StatusLabel)
	suite.Equal(int64(9900), claimableRow.TotalCents)
	suite.Equal(order.Cash.String(), claimableRow.PaymentMethod)

	mineRow, ok := byID[mine.ID().String()]
	suite.Require().True(ok)
	suite.True(mineRow.Mine)
	suite.Equal(order.Preparing, mineRow.Status)
}

func (suite *GetDriverOrdersQueryHandlerTestSuite) TestHandle_OwnOrderVisibleThroughAtDoor() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	atDoor := suite.seedOrder(tenantID, order.AtDoor, &driverID)

	query, err := queries.NewGetDriverOrdersQuery(driverID, tenantID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(atDoor.ID(), result[0].ID)
	suite.Equal(order.AtDoor, result[0].Status)
	suite.True(result[0].Mine)
}

func TestGetDriverOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(GetDriverOrdersQueryHandlerTestSuite))
}
