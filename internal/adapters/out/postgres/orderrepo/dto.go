// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// the hot paths: a tenant's order board, a driver's active orders, and the
// claimable set.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID  `gorm:"type:uuid;index"`
	ClientID         uuid.UUID  `gorm:"type:uuid;index"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`
	TotalCents       int64
	PaymentMethod    int
	PaymentStatus    int
	Status           int `gorm:"index"`

	CancelReason       string
	ProblemCategory    string
	ProblemDescription string

	CreatedAt   time.Time `gorm:"index"`
	AcceptedAt  *time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time
	PickedUpAt  *time.Time
	OnWayAt     *time.Time
	AtDoorAt    *time.Time
	DeliveredAt *time.Time
	CanceledAt  *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.AssignedDriver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		TenantID:         aggregate.TenantID().Bytes(),
		ClientID:         aggregate.ClientID().Bytes(),
		AssignedDriverID: driverID,
		TotalCents:       aggregate.Total().Cents(),
		PaymentMethod:    int(aggregate.PaymentMethod()),
		PaymentStatus:    int(aggregate.PaymentStatus()),
		Status:           int(aggregate.Status()),

		CancelReason:       aggregate.CancelReason(),
		ProblemCategory:    aggregate.ProblemCategory(),
		ProblemDescription: aggregate.ProblemDescription(),

		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		PreparingAt: aggregate.PreparingAt(),
		ReadyAt:     aggregate.ReadyAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		OnWayAt:     aggregate.OnWayAt(),
		AtDoorAt:    aggregate.AtDoorAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CanceledAt:  aggregate.CanceledAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, which re-checks
// identity and value fields at the boundary so corrupted rows are rejected.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	total, err := kernel.MoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		TenantID:         tenantID,
		ClientID:         clientID,
		AssignedDriverID: driverID,
		Total:            total,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:    order.PaymentStatus(dto.PaymentStatus),
		Status:           order.Status(dto.Status),

		CancelReason:       dto.CancelReason,
		ProblemCategory:    dto.ProblemCategory,
		ProblemDescription: dto.ProblemDescription,

		CreatedAt:   dto.CreatedAt,
		AcceptedAt:  dto.AcceptedAt,
		PreparingAt: dto.PreparingAt,
		ReadyAt:     dto.ReadyAt,
		PickedUpAt:  dto.PickedUpAt,
		OnWayAt:     dto.OnWayAt,
		AtDoorAt:    dto.AtDoorAt,
		DeliveredAt: dto.DeliveredAt,
		CanceledAt:  dto.CanceledAt,
	})
}
