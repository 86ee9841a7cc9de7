package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand represents the payment gateway confirming a prepaid
// order. Only card and pix orders go through the gateway; cash settles on
// delivery.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a validated command for payment confirmation.
func NewConfirmPaymentCommand(orderID kernel.UUID, tenantID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		tenantID.Validate(),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID:  orderID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPaymentCommandIsNotConstructed if validation fails.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant that owns the order.
func (c ConfirmPaymentCommand) TenantID() kernel.UUID {
	return c.tenantID
}
