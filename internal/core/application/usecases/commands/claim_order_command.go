package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
)

// ClaimOrderCommand represents a driver claiming an approved order.
// A successful claim assigns the driver and starts preparation as one unit:
// there is never an assigned order still waiting in the approved state.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a validated command for claiming an order.
// The tenantID is the tenant the driver is acting under; it must match the
// order's owning tenant.
func NewClaimOrderCommand(orderID kernel.UUID, driverID kernel.UUID, tenantID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
		tenantID.Validate(),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to claim.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the claiming driver.
func (c ClaimOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TenantID returns the tenant the driver is acting under.
func (c ClaimOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}
