package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ClaimOrderCommandHandler coordinates driver claims over approved orders.
//
// The claim is first validated in memory against the loaded aggregate, then
// applied with a conditional write keyed on the order still being approved
// and unassigned. When two drivers race for the same order exactly one
// conditional write matches; the loser gets ErrOrderAlreadyClaimed and the
// winner's assignment is never overwritten.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewClaimOrderCommandHandler creates a handler for order claim operations.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the claim command.
//
// Returns ErrNotAuthorizedForTenant when the order belongs to another tenant,
// ErrDriverBusy when the driver already carries an active order,
// ErrOrderAlreadyClaimed when the order is not claimable or another driver
// won the race, and errs.ErrObjectNotFound when the order does not exist.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	claimedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if claimedOrder.TenantID() != cmd.TenantID() {
		return ErrNotAuthorizedForTenant
	}

	active, err := uow.OrderRepository().GetActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return ErrDriverBusy
	}

	expected := claimedOrder.Status()
	if err = claimedOrder.Claim(cmd.DriverID(), time.Now().UTC()); err != nil {
		if errors.Is(err, order.ErrOrderNotAvailable) {
			return ErrOrderAlreadyClaimed
		}
		return err
	}

	if err = uow.OrderRepository().UpdateClaimed(ctx, claimedOrder, expected); err != nil {
		// The row changed between load and write: another driver claimed it
		// or the company moved it out of the approved state.
		if errors.Is(err, errs.ErrConcurrentUpdate) {
			return ErrOrderAlreadyClaimed
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyOrderChanged(ctx, claimedOrder)
	return nil
}
