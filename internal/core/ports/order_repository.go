// Package ports defines repository, unit-of-work, and notification interfaces
// for the dispatch core. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// All writes are conditional: the repository never performs a blind
// read-modify-write. Update compares against the status the caller observed
// when it loaded the aggregate, and UpdateClaimed additionally requires the
// row to still be unassigned. A write that matches no row returns
// errs.ErrConcurrentUpdate so the caller can surface the lost race instead of
// silently overwriting another actor's change.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate with a
	// compare-and-set on the expected current status. Returns
	// errs.ErrConcurrentUpdate if the stored status no longer matches.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// UpdateClaimed persists a successful claim: assignment, status advance,
	// and timestamp as a single conditional write keyed on the order still
	// being in the expected status with no assigned driver. Returns
	// errs.ErrConcurrentUpdate if another driver won the race or the company
	// changed the order first.
	UpdateClaimed(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByDriver retrieves the driver's orders in non-terminal statuses.
	// Used to enforce the one-active-order-per-driver rule.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)

	// GetRequestedBefore retrieves orders still awaiting company approval that
	// were created before the given cutoff. Used by the stale-order reminder job.
	GetRequestedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
