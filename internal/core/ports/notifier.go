package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderNotifier pushes change notifications to subscribers (other drivers'
// order lists, company dashboards) after a successful write. Delivery is
// fire-and-forget from the core's point of view: a failed notification is
// logged by the adapter, never propagated into the business operation, and
// subscription/session management lives entirely in the external collaborator.
type OrderNotifier interface {
	// NotifyOrderChanged publishes that the order changed state.
	NotifyOrderChanged(ctx context.Context, aggregate *order.Order) error
}
