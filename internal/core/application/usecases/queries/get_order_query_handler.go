package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order detail view from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound both when the
// order does not exist and when it belongs to another tenant.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		clientID      uuid.UUID
		driverID      *uuid.UUID
		status        int
		paymentMethod int
		paymentStatus int
		resp          GetOrderQueryResponse
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			client_id,
			assigned_driver_id,
			status,
			total_cents,
			payment_method,
			payment_status,
			cancel_reason,
			problem_category,
			problem_description,
			created_at,
			accepted_at,
			preparing_at,
			ready_at,
			picked_up_at,
			on_way_at,
			at_door_at,
			delivered_at,
			canceled_at
		FROM orders
		WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.TenantID().Bytes()).Row()

	err := row.Scan(
		&clientID,
		&driverID,
		&status,
		&resp.TotalCents,
		&paymentMethod,
		&paymentStatus,
		&resp.CancelReason,
		&resp.ProblemCategory,
		&resp.ProblemDescription,
		&resp.CreatedAt,
		&resp.AcceptedAt,
		&resp.PreparingAt,
		&resp.ReadyAt,
		&resp.PickedUpAt,
		&resp.OnWayAt,
		&resp.AtDoorAt,
		&resp.DeliveredAt,
		&resp.CanceledAt,
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	resp.ID = query.OrderID()
	resp.ClientID, err = kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if driverID != nil {
		assigned, idErr := kernel.UUIDFromBytes((*driverID)[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.AssignedDriver = &assigned
	}

	resp.Status = order.Status(status)
	resp.StatusLabel = resp.Status.Label()
	resp.NextStates = resp.Status.NextStates()
	resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
	resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
	return resp, nil
}
