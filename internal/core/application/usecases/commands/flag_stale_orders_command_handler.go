package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// FlagStaleOrdersCommandHandler re-announces orders stuck in the requested
// state. It reads inside a transaction for a consistent snapshot but writes
// nothing; the notification stream is the whole effect.
type FlagStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewFlagStaleOrdersCommandHandler creates a handler for the stale-order sweep.
func NewFlagStaleOrdersCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) FlagStaleOrdersCommandHandler {
	return FlagStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the sweep command and returns how many orders were flagged.
func (h FlagStaleOrdersCommandHandler) Handle(ctx context.Context, cmd FlagStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.Threshold())
	stale, err := uow.OrderRepository().GetRequestedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		_ = h.notifier.NotifyOrderChanged(ctx, aggregate)
	}

	return len(stale), nil
}
