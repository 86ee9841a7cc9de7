package wallet

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrTransactionIsNotConstructed is returned when a Transaction was not created
// through the wallet aggregate or RestoreTransaction.
var ErrTransactionIsNotConstructed = errors.New(
	"Transaction must be created via Wallet methods or RestoreTransaction")

// TransactionType distinguishes credits from debits in the ledger.
type TransactionType int

const (
	// TransactionTypeUnknown represents an invalid or undefined transaction type.
	TransactionTypeUnknown TransactionType = iota

	// Credit increases the wallet balance (order delivered).
	Credit

	// Debit decreases the wallet balance (withdrawal, adjustment).
	Debit
)

// Validate checks if the TransactionType is one of the defined types.
func (t TransactionType) Validate() error {
	switch t {
	case Credit, Debit:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("transaction type",
			fmt.Errorf("%d is not a valid transaction type", t))
	}
}

// String returns the wire token of the transaction type.
func (t TransactionType) String() string {
	switch t {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "Unknown"
	}
}

// Transaction is one immutable entry in a tenant's wallet ledger.
// A transaction references exactly one order; the ledger holds at most one
// credit per order, which is how "delivered implies credited, exactly once"
// is enforced at the storage level.
type Transaction struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	orderID       kernel.UUID
	amount        kernel.Money
	txType        TransactionType
	paymentMethod order.PaymentMethod
	description   string
	createdAt     time.Time

	isConstructed bool
}

func newTransaction(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	txType TransactionType,
	paymentMethod order.PaymentMethod,
	description string,
	createdAt time.Time,
) (*Transaction, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		orderID.Validate(),
		amount.Validate(),
		txType.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	return &Transaction{
		id:            id,
		tenantID:      tenantID,
		orderID:       orderID,
		amount:        amount,
		txType:        txType,
		paymentMethod: paymentMethod,
		description:   description,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreTransaction reconstructs a ledger entry from persistence.
func RestoreTransaction(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	txType TransactionType,
	paymentMethod order.PaymentMethod,
	description string,
	createdAt time.Time,
) (*Transaction, error) {
	return newTransaction(id, tenantID, orderID, amount, txType, paymentMethod, description, createdAt)
}

// Validate ensures the Transaction was properly constructed.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier of the ledger entry.
func (t *Transaction) ID() kernel.UUID { return t.id }

// TenantID returns the tenant whose wallet the entry belongs to.
func (t *Transaction) TenantID() kernel.UUID { return t.tenantID }

// OrderID returns the order the entry references.
func (t *Transaction) OrderID() kernel.UUID { return t.orderID }

// Amount returns the monetary amount of the entry.
func (t *Transaction) Amount() kernel.Money { return t.amount }

// Type returns whether the entry is a credit or a debit.
func (t *Transaction) Type() TransactionType { return t.txType }

// PaymentMethod returns the payment method of the referenced order.
func (t *Transaction) PaymentMethod() order.PaymentMethod { return t.paymentMethod }

// Description returns the human-readable description of the entry.
func (t *Transaction) Description() string { return t.description }

// CreatedAt returns when the entry was appended.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
