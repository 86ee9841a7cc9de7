package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrFlagStaleOrdersCommandIsNotConstructed = errors.New(
		"FlagStaleOrdersCommand must be created via NewFlagStaleOrdersCommand constructor",
	)
)

// FlagStaleOrdersCommand represents the periodic sweep for orders that sat in
// the requested state longer than the approval threshold. Flagged orders are
// re-announced so company dashboards surface them; the sweep never changes
// order state.
type FlagStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewFlagStaleOrdersCommand creates a validated command for the stale-order sweep.
func NewFlagStaleOrdersCommand(threshold time.Duration) (FlagStaleOrdersCommand, error) {
	if threshold <= 0 {
		return FlagStaleOrdersCommand{}, errs.NewValueIsInvalidError("threshold")
	}

	return FlagStaleOrdersCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFlagStaleOrdersCommandIsNotConstructed if validation fails.
func (c FlagStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFlagStaleOrdersCommandIsNotConstructed)
}

// Threshold returns how long an order may wait for approval before it is
// considered stale.
func (c FlagStaleOrdersCommand) Threshold() time.Duration {
	return c.threshold
}
