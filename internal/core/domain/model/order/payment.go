package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod represents how the client pays for an order.
// Cash is collected by the driver at the door; Card and Pix are prepaid
// through the payment gateway.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// Cash is paid to the driver on delivery.
	Cash

	// Card is prepaid by credit or debit card.
	Card

	// Pix is prepaid by instant bank transfer.
	Pix
)

// getPaymentMethodStrings returns a map of PaymentMethod values to their string representations.
func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "Unknown",
		Cash:                 "CASH",
		Card:                 "CARD",
		Pix:                  "PIX",
	}
}

// IsPrepaid reports whether the method is settled through the gateway
// before delivery. Prepaid orders flip to Paid on gateway confirmation;
// cash orders flip to Paid when the delivery completes.
func (m PaymentMethod) IsPrepaid() bool {
	return m == Card || m == Pix
}

// Validate checks if the PaymentMethod value is one of the defined methods.
func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, Card, Pix:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
}

// String returns the wire token of the payment method.
// Safe to call on any value, including invalid ones.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentMethodFromString parses a payment method token as produced by String.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// PaymentStatus represents whether an order has been paid.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// Unpaid means no payment has been confirmed for the order.
	Unpaid

	// Paid means payment was confirmed, either by the gateway (prepaid
	// methods) or by cash collection on delivery.
	Paid
)

// Validate checks if the PaymentStatus value is one of the defined statuses.
func (s PaymentStatus) Validate() error {
	switch s {
	case Unpaid, Paid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// String returns the wire token of the payment status.
// Safe to call on any value, including invalid ones.
func (s PaymentStatus) String() string {
	switch s {
	case Unpaid:
		return "UNPAID"
	case Paid:
		return "PAID"
	default:
		return "Unknown"
	}
}
