package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverOrdersQueryHandler builds a driver's order board from the database.
// The board is the union of two sets: approved unassigned orders of the
// driver's tenant, and the driver's own orders still in flight.
type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverOrdersQueryHandler creates a handler for driver board queries.
// Requires a GORM database connection for query execution.
func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

// Handle executes the query. Claimable orders come first, oldest on top, so
// the longest-waiting order is the most visible one.
func (h GetDriverOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDriverOrdersQuery,
) ([]GetDriverOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetDriverOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			total_cents,
			payment_method,
			assigned_driver_id,
			created_at
		FROM orders
		WHERE (tenant_id = ? AND status = ? AND assigned_driver_id IS NULL)
		   OR (assigned_driver_id = ? AND status NOT IN (?, ?))
		ORDER BY assigned_driver_id NULLS FIRST, created_at
	`,
		query.TenantID().Bytes(), order.Approved,
		query.DriverID().Bytes(), order.Delivered, order.Canceled,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			status        int
			totalCents    int64
			paymentMethod int
			driverID      *uuid.UUID
			resp          GetDriverOrdersQueryResponse
		)

		if err = rows.Scan(&id, &status, &totalCents, &paymentMethod, &driverID, &resp.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.StatusLabel = order.Status(status).Label()
		resp.TotalCents = totalCents
		resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
		resp.Mine = driverID != nil && *driverID == query.DriverID().Bytes()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
