package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies lifecycle transitions to orders.
//
// Every write is conditional on the status the aggregate was loaded with, so
// a transition that lost a race against a concurrent actor fails with
// errs.ErrConcurrentUpdate instead of overwriting the other actor's change.
//
// Reaching Delivered additionally credits the order total to the tenant's
// wallet. The status write, the balance update, and the ledger entry commit
// in the same transaction: an order is delivered if and only if its credit
// exists, and the ledger holds at most one credit per order.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.OrderNotifier
}

// NewTransitionOrderCommandHandler creates a handler for status transition operations.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
//
// Returns errs.ErrObjectNotFound when the order does not exist,
// ErrActorForbidden when the actor is not allowed to move this order, an
// order.InvalidTransitionError when the lifecycle rejects the move,
// order.ErrReasonIsRequired when required transition context is missing, and
// errs.ErrConcurrentUpdate when a concurrent actor changed the order first.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if !aggregate.CanBeActedOnBy(cmd.Actor()) {
		return ErrActorForbidden
	}

	now := time.Now().UTC()
	expected := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.TransitionContext(), now); err != nil {
		return err
	}

	if cmd.Target() == order.Delivered {
		if err = h.creditDelivery(ctx, uow, aggregate, now); err != nil {
			return err
		}
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

// creditDelivery credits the delivered order's total to the tenant wallet
// inside the caller's transaction. A tenant's wallet is created lazily on
// its first delivery. The ledger's one-credit-per-order rule makes a
// replayed delivery fail here before the status write can commit.
func (h TransitionOrderCommandHandler) creditDelivery(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	at time.Time,
) error {
	tenantWallet, err := uow.WalletRepository().GetByTenant(ctx, aggregate.TenantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		tenantWallet, err = wallet.NewWallet(aggregate.TenantID(), at)
		if err != nil {
			return err
		}
		if err = uow.WalletRepository().Add(ctx, tenantWallet); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	expectedBalance := tenantWallet.Balance()
	entry, err := tenantWallet.Credit(aggregate, "order delivered", at)
	if err != nil {
		return err
	}

	if err = uow.WalletRepository().Update(ctx, tenantWallet, expectedBalance); err != nil {
		return err
	}

	return uow.WalletRepository().AddTransaction(ctx, entry)
}
