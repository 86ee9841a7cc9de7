// Package walletrepo provides data transfer objects and mapping functions for
// wallet persistence. The wallet row carries the balance; the ledger table
// carries one immutable row per transaction, with a partial unique index
// guaranteeing at most one credit per order.
package walletrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// WalletDTO represents the database structure for persisting wallets.
// One row per tenant.
type WalletDTO struct {
	TenantID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	BalanceCents int64
	UpdatedAt    time.Time
}

// TableName specifies the database table name for wallet entities.
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO represents one ledger entry. The partial unique index on
// order_id for credit rows is what makes a delivery credit idempotent at the
// storage level.
type TransactionDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wallet_tx_credit_order,where:tx_type = 1"`
	AmountCents   int64
	TxType        int
	PaymentMethod int
	Description   string
	CreatedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

func walletFromDomain(aggregate *wallet.Wallet) WalletDTO {
	return WalletDTO{
		TenantID:     aggregate.TenantID().Bytes(),
		BalanceCents: aggregate.Balance().Cents(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

func walletToDomain(dto WalletDTO) (*wallet.Wallet, error) {
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.MoneyFromCents(dto.BalanceCents)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreWallet(tenantID, balance, dto.UpdatedAt)
}

func transactionFromDomain(entry *wallet.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:            entry.ID().Bytes(),
		TenantID:      entry.TenantID().Bytes(),
		OrderID:       entry.OrderID().Bytes(),
		AmountCents:   entry.Amount().Cents(),
		TxType:        int(entry.Type()),
		PaymentMethod: int(entry.PaymentMethod()),
		Description:   entry.Description(),
		CreatedAt:     entry.CreatedAt(),
	}
}

func transactionToDomain(dto TransactionDTO) (*wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.MoneyFromCents(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreTransaction(
		id,
		tenantID,
		orderID,
		amount,
		wallet.TransactionType(dto.TxType),
		order.PaymentMethod(dto.PaymentMethod),
		dto.Description,
		dto.CreatedAt,
	)
}
