package commands

import "errors"

var (
	// ErrOrderAlreadyClaimed is returned when a driver tries to claim an
	// order that another driver already claimed, or that left the claimable
	// state between the load and the conditional write.
	ErrOrderAlreadyClaimed = errors.New("order has already been claimed")

	// ErrDriverBusy is returned when a driver with an active order tries to
	// claim another one. A driver carries at most one active order.
	ErrDriverBusy = errors.New("driver already has an active order")

	// ErrNotAuthorizedForTenant is returned when the acting tenant does not
	// own the order. Cross-tenant access looks identical to a missing order
	// at the transport layer.
	ErrNotAuthorizedForTenant = errors.New("order belongs to another tenant")

	// ErrActorForbidden is returned when the actor is not allowed to move the
	// order: a driver touching an order assigned to someone else, or a
	// company issuing a driver-side transition.
	ErrActorForbidden = errors.New("actor is not allowed to act on this order")
)
