package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using NewMoney or MoneyFromCents to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or MoneyFromCents constructors")

// Money represents a monetary amount stored as an integer number of cents.
// Money is an immutable value object; arithmetic returns new instances.
// The zero value of Money is invalid and will fail validation - use constructors
// to create instances.
//
// Amounts are always non-negative. Order totals and wallet balances never go
// below zero in this domain; debits are validated against the available balance
// before they are applied.
//
// Example:
//
//	total, err := kernel.NewMoney(12550) // R$ 125.50
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(total.String()) // "125.50"
type Money struct {
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount of cents.
// The amount must be strictly positive; use MoneyFromCents when zero is an
// acceptable value (e.g. restoring an empty wallet balance).
func NewMoney(cents int64) (Money, error) {
	if cents <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", cents))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromCents creates a Money value allowing zero amounts.
// Negative amounts are rejected.
func MoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two Money values as a new instance.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return Money{cents: m.cents + other.cents, guard: guard.NewConstructorGuard()}, nil
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the decimal representation with two fractional digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
