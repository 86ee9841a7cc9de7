package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPrepaidOrder(t *testing.T, orderID, tenantID kernel.UUID) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(8900)
	require.NoError(t, err)
	o, err := order.NewOrder(orderID, tenantID, kernel.NewUUID(), total, order.Pix, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestConfirmPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	tenantID := kernel.NewUUID()

	prepaid := newPrepaidOrder(t, orderID, tenantID)
	cmd, err := commands.NewConfirmPaymentCommand(orderID, tenantID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, orderID).Return(prepaid, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", ctx, prepaid, order.Requested).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier.On("NotifyOrderChanged", ctx, prepaid).Return(nil).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, prepaid.PaymentStatus())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_CashOrderRejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	tenantID := kernel.NewUUID()

	cash := newTestOrder(orderID, tenantID)
	cmd, err := commands.NewConfirmPaymentCommand(orderID, tenantID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, orderID).Return(cash, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrPaymentMethodNotPrepaid)
	assert.Equal(t, order.Unpaid, cash.PaymentStatus())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_Replay(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	tenantID := kernel.NewUUID()

	prepaid := newPrepaidOrder(t, orderID, tenantID)
	require.NoError(t, prepaid.ConfirmPayment())

	cmd, err := commands.NewConfirmPaymentCommand(orderID, tenantID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, orderID).Return(prepaid, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrPaymentAlreadyConfirmed)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_WrongTenant(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	prepaid := newPrepaidOrder(t, orderID, kernel.NewUUID())
	cmd, err := commands.NewConfirmPaymentCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, orderID).Return(prepaid, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNotAuthorizedForTenant)
	assert.Equal(t, order.Unpaid, prepaid.PaymentStatus())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
