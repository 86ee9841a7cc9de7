package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents an actor moving an order to a new
// lifecycle status. The actor is either the owning company or the assigned
// driver; which transitions each is allowed to issue is decided against the
// loaded aggregate, not here.
//
// Cancellations carry a reason; problem reports carry a category and a
// description. Whether the context is actually required depends on the
// target status and is enforced by the aggregate.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	target  order.Status

	cancelReason       string
	problemCategory    string
	problemDescription string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated command for a status transition.
// The target must be a known status; whether the transition is allowed from
// the order's current status is the aggregate's decision.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
	transitionCtx order.TransitionContext,
) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:            orderID,
		actor:              actor,
		target:             target,
		cancelReason:       strings.TrimSpace(transitionCtx.CancelReason),
		problemCategory:    strings.TrimSpace(transitionCtx.ProblemCategory),
		problemDescription: strings.TrimSpace(transitionCtx.ProblemDescription),
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who issues the transition.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

// Target returns the status the order should move to.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// TransitionContext returns the state-specific side data for the transition.
func (c TransitionOrderCommand) TransitionContext() order.TransitionContext {
	return order.TransitionContext{
		CancelReason:       c.cancelReason,
		ProblemCategory:    c.problemCategory,
		ProblemDescription: c.problemDescription,
	}
}
