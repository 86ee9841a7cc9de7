package queries_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/walletrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetWalletStatementQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *walletrepo.GormWalletRepository
	handler    queries.GetWalletStatementQueryHandler
}

func (suite *GetWalletStatementQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&walletrepo.WalletDTO{}, &walletrepo.TransactionDTO{}))

	suite.handler = queries.NewGetWalletStatementQueryHandler(db)
}

func (suite *GetWalletStatementQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE wallets, wallet_transactions").Error)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = walletrepo.NewGormWalletRepository(suite.db, tracker)
}

func (suite *GetWalletStatementQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedCredit records one delivered-order credit against the wallet and
// returns the ledger entry.
func (suite *GetWalletStatementQueryHandlerTestSuite) seedCredit(
	w *wallet.Wallet,
	cents int64,
	at time.Time,
) *wallet.Transaction {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	total, err := kernel.NewMoney(cents)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), w.TenantID(), kernel.NewUUID(), total, order.Cash, at)
	suite.Require().NoError(err)
	suite.Require().NoError(o.TransitionTo(order.Approved, order.TransitionContext{}, at))
	suite.Require().NoError(o.Claim(driverID, at))
	for _, next := range []order.Status{order.ReadyForPickup, order.PickedUp, order.EnRoute, order.AtDoor, order.Delivered} {
		suite.Require().NoError(o.TransitionTo(next, order.TransitionContext{}, at))
	}

	entry, err := w.Credit(o, "order delivered", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddTransaction(ctx, entry))
	return entry
}

func (suite *GetWalletStatementQueryHandlerTestSuite) TestHandle_ReturnsBalanceAndRecentEntries() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)

	w, err := wallet.NewWallet(tenantID, base)
	suite.Require().NoError(err)

	suite.seedCredit(w, 10000, base)
	second := suite.seedCredit(w, 20000, base.Add(10*time.Minute))
	third := suite.seedCredit(w, 30000, base.Add(20*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, w))

	query, err := queries.NewGetWalletStatementQuery(tenantID, 2)
	suite.Require().NoError(err)

	statement, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(tenantID, statement.TenantID)
	suite.Equal(int64(60000), statement.BalanceCents)

	// Newest first, capped by the limit.
	suite.Require().Len(statement.Entries, 2)
	suite.Equal(third.ID(), statement.Entries[0].ID)
	suite.Equal(second.ID(), statement.Entries[1].ID)
	suite.Equal(int64(30000), statement.Entries[0].AmountCents)
	suite.Equal("credit", statement.Entries[0].Type)
	suite.Equal(order.Cash.String(), statement.Entries[0].PaymentMethod)
	suite.Equal("order delivered", statement.Entries[0].Description)
}

func (suite *GetWalletStatementQueryHandlerTestSuite) TestHandle_EmptyLedger_ReturnsBalanceOnly() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	w, err := wallet.NewWallet(tenantID, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, w))

	query, err := queries.NewGetWalletStatementQuery(tenantID, 0)
	suite.Require().NoError(err)

	statement, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(int64(0), statement.BalanceCents)
	suite.Empty(statement.Entries)
}

func (suite *GetWalletStatementQueryHandlerTestSuite) TestHandle_MissingWallet_ReturnsNotFound() {
	query, err := queries.NewGetWalletStatementQuery(kernel.NewUUID(), 0)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetWalletStatementQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(GetWalletStatementQueryHandlerTestSuite))
}
