package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for tenant wallets and
// their ledger. Balance updates are conditional on the previously observed
// balance so concurrent deliveries for the same tenant serialize instead of
// losing credits.
type WalletRepository interface {
	// Add persists a new wallet.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists a balance change with a compare-and-set on the balance
	// the caller observed when loading the wallet. Returns
	// errs.ErrConcurrentUpdate if the stored balance no longer matches.
	Update(ctx context.Context, aggregate *wallet.Wallet, expectedBalance kernel.Money) error

	// GetByTenant retrieves the wallet for a tenant.
	// Returns errs.ErrObjectNotFound if the tenant has no wallet yet.
	GetByTenant(ctx context.Context, tenantID kernel.UUID) (*wallet.Wallet, error)

	// AddTransaction appends a ledger entry. The ledger allows at most one
	// credit per order; appending a duplicate returns errs.ErrConcurrentUpdate.
	AddTransaction(ctx context.Context, entry *wallet.Transaction) error
}
