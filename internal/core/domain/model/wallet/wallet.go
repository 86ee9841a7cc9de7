// Package wallet provides the tenant wallet aggregate and its append-only
// transaction ledger. Delivering an order credits the owning tenant's wallet
// with the order total; the credit and the matching ledger entry are applied
// under the same transactional boundary as the order's status change.
package wallet

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet instance was not created
	// through the NewWallet or RestoreWallet factory methods.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet")

	// ErrInsufficientBalance is returned when a debit would take the balance below zero.
	ErrInsufficientBalance = errors.New("wallet balance is insufficient")
)

// Wallet is the aggregate root for a tenant's running balance.
// Every balance change produces exactly one ledger Transaction; the pair is
// persisted atomically so the balance always equals the sum of the ledger.
type Wallet struct {
	tenantID  kernel.UUID
	balance   kernel.Money
	updatedAt time.Time

	isConstructed bool
}

// NewWallet creates an empty wallet for a tenant.
func NewWallet(tenantID kernel.UUID, createdAt time.Time) (*Wallet, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	balance, err := kernel.MoneyFromCents(0)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		tenantID:      tenantID,
		balance:       balance,
		updatedAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreWallet reconstructs a wallet from persistence.
func RestoreWallet(tenantID kernel.UUID, balance kernel.Money, updatedAt time.Time) (*Wallet, error) {
	if err := errors.Join(tenantID.Validate(), balance.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		tenantID:      tenantID,
		balance:       balance,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Wallet instance was properly constructed through a factory method.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

// TenantID returns the tenant owning the wallet.
func (w *Wallet) TenantID() kernel.UUID {
	return w.tenantID
}

// Balance returns the current balance.
func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

// UpdatedAt returns when the balance last changed.
func (w *Wallet) UpdatedAt() time.Time {
	return w.updatedAt
}

// Credit increases the balance by the amount of the delivered order and
// returns the ledger entry recording it. The caller persists the wallet and
// the entry in the same transaction as the order's status write; a delivered
// order without its credit, or a credit without its delivered order, is a
// consistency violation.
func (w *Wallet) Credit(
	o *order.Order,
	description string,
	at time.Time,
) (*Transaction, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}

	newBalance, err := w.balance.Add(o.Total())
	if err != nil {
		return nil, err
	}

	entry, err := newTransaction(
		kernel.NewUUID(),
		w.tenantID,
		o.ID(),
		o.Total(),
		Credit,
		o.PaymentMethod(),
		description,
		at,
	)
	if err != nil {
		return nil, err
	}

	w.balance = newBalance
	w.updatedAt = at
	return entry, nil
}

// Debit decreases the balance and returns the ledger entry recording it.
// The balance never goes below zero.
func (w *Wallet) Debit(
	amount kernel.Money,
	relatedOrderID kernel.UUID,
	paymentMethod order.PaymentMethod,
	description string,
	at time.Time,
) (*Transaction, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if w.balance.Cents() < amount.Cents() {
		return nil, ErrInsufficientBalance
	}

	newBalance, err := kernel.MoneyFromCents(w.balance.Cents() - amount.Cents())
	if err != nil {
		return nil, err
	}

	entry, err := newTransaction(
		kernel.NewUUID(),
		w.tenantID,
		relatedOrderID,
		amount,
		Debit,
		paymentMethod,
		description,
		at,
	)
	if err != nil {
		return nil, err
	}

	w.balance = newBalance
	w.updatedAt = at
	return entry, nil
}
