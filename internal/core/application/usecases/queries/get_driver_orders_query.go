// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
		"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
	)
)

// GetDriverOrdersQuery retrieves the orders a driver's board shows: orders
// approved and waiting for a claim within the driver's tenant, plus the
// driver's own in-flight orders.
//
// Example:
//
//	query, err := NewGetDriverOrdersQuery(driverID, tenantID)
//	if err != nil {
//	    return fmt.Errorf("invalid driver board request: %w", err)
//	}
//	board, err := handler.Handle(ctx, query)
type GetDriverOrdersQuery struct {
	driverID kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverOrdersQuery creates a query for a driver's order board.
func NewGetDriverOrdersQuery(driverID kernel.UUID, tenantID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := errors.Join(
		driverID.Validate(),
		tenantID.Validate(),
	); err != nil {
		return GetDriverOrdersQuery{}, err
	}

	return GetDriverOrdersQuery{
		driverID: driverID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverOrdersQueryIsNotConstructed if validation fails.
func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

// DriverID returns the driver whose board is requested.
func (q GetDriverOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

// TenantID returns the tenant the driver works under.
func (q GetDriverOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetDriverOrdersQueryResponse represents one order on a driver's board.
// Claimable orders carry no driver; Mine reports whether the order is
// already assigned to the requesting driver.
type GetDriverOrdersQueryResponse struct {
	ID            kernel.UUID
	Status        order.Status
	StatusLabel   string
	TotalCents    int64
	PaymentMethod string
	Mine          bool
	CreatedAt     time.Time
}
