package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a client placing a new order with a tenant.
// The order starts in the Requested status, unpaid and unassigned, and waits
// for the company to approve it.
//
// Example:
//
//	total, _ := kernel.NewMoney(12550)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), tenantID, clientID, total, order.Pix)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	tenantID      kernel.UUID
	clientID      kernel.UUID
	total         kernel.Money
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the total amount, and the payment method.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID kernel.UUID,
	clientID kernel.UUID,
	total kernel.Money,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		tenantID.Validate(),
		clientID.Validate(),
		total.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:       orderID,
		tenantID:      tenantID,
		clientID:      clientID,
		total:         total,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the company the order is placed with.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// ClientID returns the client placing the order.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Total returns the monetary amount of the order.
func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

// PaymentMethod returns how the client will pay.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}
