package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// ConfirmPaymentCommandHandler marks prepaid orders as paid when the gateway
// confirms the charge. The write is conditional on the order's status so a
// confirmation racing a cancellation loses cleanly.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation operations.
func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment confirmation command.
//
// Returns errs.ErrObjectNotFound when the order does not exist,
// ErrNotAuthorizedForTenant when the order belongs to another tenant,
// order.ErrPaymentMethodNotPrepaid for cash orders, and
// order.ErrPaymentAlreadyConfirmed on replays.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.TenantID() != cmd.TenantID() {
		return ErrNotAuthorizedForTenant
	}

	expected := aggregate.Status()
	if err = aggregate.ConfirmPayment(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyOrderChanged(ctx, aggregate)
	return nil
}
